package dataset

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocString(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := bson.M{
		"s":     " text ",
		"blank": "  ",
		"i32":   int32(102),
		"i64":   int64(914612),
		"f":     float64(1958),
		"oid":   oid,
		"bool":  true,
	}
	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"s", "text", true},
		{"blank", "", false},
		{"i32", "102", true},
		{"i64", "914612", true},
		{"f", "1958", true},
		{"oid", oid.Hex(), true},
		{"bool", "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := docString(doc, tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("docString(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPersonFromDoc(t *testing.T) {
	p, ok := personFromDoc(bson.M{"id": int32(102), "name": "Kevin Bacon", "birth": int32(1958)})
	if !ok || p.ID != "102" || p.Name != "Kevin Bacon" || p.Birth != 1958 {
		t.Errorf("personFromDoc = %+v, %v", p, ok)
	}

	oid := primitive.NewObjectID()
	p, ok = personFromDoc(bson.M{"_id": oid, "name": "Anon"})
	if !ok || p.ID != oid.Hex() {
		t.Errorf("personFromDoc should fall back to _id, got %+v", p)
	}

	if _, ok := personFromDoc(bson.M{"name": "No ID"}); ok {
		t.Error("personFromDoc without any id should fail")
	}
}

func TestProductionFromDoc(t *testing.T) {
	m, ok := productionFromDoc(bson.M{"id": "112384", "title": "Apollo 13", "year": "1995"})
	if !ok || m.Title != "Apollo 13" || m.Year != 1995 {
		t.Errorf("productionFromDoc = %+v, %v", m, ok)
	}
}
