package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/frontier/pkg/buildinfo"
	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/degrees"
	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/game/tictactoe"
	"github.com/matzehuels/frontier/pkg/pipeline"
)

type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	People      int    `json:"people"`
	Productions int    `json:"productions"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Version:     buildinfo.Version,
		People:      s.ds.NumPeople(),
		Productions: s.ds.NumProductions(),
	})
}

type peopleResponse struct {
	Name   string           `json:"name"`
	People []dataset.Person `json:"people"`
}

func (s *Server) people(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := errors.ValidateName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	ids := s.ds.ResolveName(name)
	if len(ids) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "person %q not found", name))
		return
	}
	resp := peopleResponse{Name: name, People: make([]dataset.Person, 0, len(ids))}
	for _, id := range ids {
		if p, ok := s.ds.Person(id); ok {
			resp.People = append(resp.People, p)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type pathResponse struct {
	Source    dataset.Person `json:"source"`
	Target    dataset.Person `json:"target"`
	Connected bool           `json:"connected"`
	Degrees   int            `json:"degrees"`
	Path      degrees.Path   `json:"path"`
	Links     []degrees.Link `json:"links"`
	Explored  int            `json:"explored"`
}

// path answers the degrees query. Each endpoint is given by name or, to
// settle ambiguous names, by ID.
func (s *Server) path(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	source, err := s.endpoint(q.Get("source"), q.Get("source_id"), "source")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	target, err := s.endpoint(q.Get("target"), q.Get("target_id"), "target")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.ShortestPath(r.Context(), s.ds, source, target, pipeline.Options{Frontier: s.frontier})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := pathResponse{
		Connected: res.Connected,
		Degrees:   -1,
		Path:      degrees.Path{},
		Links:     []degrees.Link{},
		Explored:  res.Explored,
	}
	resp.Source, _ = s.ds.Person(source)
	resp.Target, _ = s.ds.Person(target)
	if res.Connected {
		resp.Degrees = res.Path.Degrees()
		resp.Path = res.Path
		resp.Links = degrees.Describe(s.ds, source, res.Path)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) endpoint(name, id, param string) (string, error) {
	if name == "" && id == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s or %s_id is required", param, param)
	}
	return degrees.Lookup(s.ds, name, id, nil)
}

type moveRequest struct {
	Board string `json:"board"`
}

type moveResponse struct {
	Board   string         `json:"board"`
	ToMove  string         `json:"to_move"`
	Move    tictactoe.Move `json:"move"`
	Value   int            `json:"value"`
	Result  string         `json:"result"`
	Nodes   int            `json:"nodes"`
	Cutoffs int            `json:"cutoffs"`
}

func (s *Server) tictactoeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	board, err := tictactoe.Parse(strings.TrimSpace(req.Board))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.BestMove(r.Context(), board, pipeline.Options{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	next, err := tictactoe.Rules{}.Apply(board, res.Move)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moveResponse{
		Board:   board.String(),
		ToMove:  tictactoe.Player(board).String(),
		Move:    res.Move,
		Value:   res.Value,
		Result:  next.String(),
		Nodes:   res.Stats.Nodes,
		Cutoffs: res.Stats.Cutoffs,
	})
}
