package dataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/frontier/pkg/buildinfo"
	"github.com/matzehuels/frontier/pkg/errors"
)

// mongoConnectTimeout bounds server selection when the caller's context has
// no deadline of its own.
const mongoConnectTimeout = 10 * time.Second

// MongoSource reads the people, movies and stars collections of a MongoDB
// database. Documents use the same field names as the CSV columns; a
// missing "id" falls back to "_id".
type MongoSource struct {
	URI      string
	Database string
}

func (s *MongoSource) String() string { return "mongodb:" + s.Database }

// Fingerprint returns "" because a live database has no stable content hash.
func (s *MongoSource) Fingerprint(ctx context.Context) (string, error) {
	return "", nil
}

// Load connects, reads the three collections and disconnects.
func (s *MongoSource) Load(ctx context.Context) (*Dataset, error) {
	opts := options.Client().
		ApplyURI(s.URI).
		SetAppName(buildinfo.UserAgent()).
		SetServerSelectionTimeout(mongoConnectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	return LoadMongo(ctx, client.Database(s.Database))
}

// LoadMongo builds a dataset from an open database handle.
func LoadMongo(ctx context.Context, db *mongo.Database) (*Dataset, error) {
	b := NewBuilder()

	err := eachDoc(ctx, db.Collection(TablePeople), func(doc bson.M) {
		if p, ok := personFromDoc(doc); ok {
			_ = b.AddPerson(p)
			return
		}
		b.Skip()
	})
	if err != nil {
		return nil, err
	}

	err = eachDoc(ctx, db.Collection(TableMovies), func(doc bson.M) {
		if m, ok := productionFromDoc(doc); ok {
			_ = b.AddProduction(m)
			return
		}
		b.Skip()
	})
	if err != nil {
		return nil, err
	}

	err = eachDoc(ctx, db.Collection(TableStars), func(doc bson.M) {
		pid, okP := docString(doc, "person_id")
		mid, okM := docString(doc, "movie_id")
		if !okP || !okM {
			b.Skip()
			return
		}
		b.AddStar(pid, mid)
	})
	if err != nil {
		return nil, err
	}

	return b.Build(), nil
}

func eachDoc(ctx context.Context, coll *mongo.Collection, fn func(bson.M)) error {
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSource, err, "query %s", coll.Name())
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("decode %s: %w", coll.Name(), err)
		}
		fn(doc)
	}
	return cur.Err()
}

func personFromDoc(doc bson.M) (Person, bool) {
	id, ok := docID(doc)
	if !ok {
		return Person{}, false
	}
	name, _ := docString(doc, "name")
	birth, _ := docString(doc, "birth")
	return Person{ID: id, Name: name, Birth: parseYear(birth)}, true
}

func productionFromDoc(doc bson.M) (Production, bool) {
	id, ok := docID(doc)
	if !ok {
		return Production{}, false
	}
	title, _ := docString(doc, "title")
	year, _ := docString(doc, "year")
	return Production{ID: id, Title: title, Year: parseYear(year)}, true
}

func docID(doc bson.M) (string, bool) {
	if id, ok := docString(doc, "id"); ok {
		return id, true
	}
	return docString(doc, "_id")
}

// docString renders scalar BSON values as the strings the CSV source would
// have produced.
func docString(doc bson.M, key string) (string, bool) {
	switch v := doc[key].(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case primitive.ObjectID:
		return v.Hex(), true
	default:
		return "", false
	}
}
