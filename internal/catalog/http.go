package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"MiniCatalog/pkg/kit"
)

const (
	itemsPath     = "/api/items"
	maxCreateBody = 1 << 20
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Routes(p *kit.Pipeline) http.Handler {
	r := chi.NewRouter()

	r.Method(http.MethodGet, itemsPath, p.Handle(s.list))
	r.Method(http.MethodGet, itemsPath+"/{id}", p.Handle(s.get))
	r.Method(http.MethodPost, itemsPath, p.Handle(s.create))

	r.NotFound(p.HandleFunc(func(w http.ResponseWriter, r *http.Request) error {
		return kit.NotFound(fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	}))
	r.MethodNotAllowed(p.HandleFunc(func(w http.ResponseWriter, r *http.Request) error {
		return kit.MethodNotAllowed(fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path))
	}))

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) error {
	kit.WriteJSON(w, http.StatusOK, s.Store.List(r.Context()))
	return nil
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) error {
	raw := chi.URLParam(r, "id")

	id, err := uuid.Parse(raw)
	if err != nil {
		return itemNotFound(raw)
	}

	it, ok := s.Store.Get(r.Context(), id)
	if !ok {
		return itemNotFound(raw)
	}

	kit.WriteJSON(w, http.StatusOK, it)
	return nil
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeCreateRequest(w, r)
	if err != nil {
		return &kit.Error{Kind: kit.KindValidation, Message: "invalid JSON body", Err: err}
	}

	name, err := req.Normalize()
	if err != nil {
		return err
	}

	it := s.Store.Create(r.Context(), name, req.Price)
	s.Log.Debug("item created",
		zap.String("request_id", kit.RequestIDFromContext(r.Context())),
		zap.Stringer("item_id", it.ID),
	)

	w.Header().Set("Location", itemsPath+"/"+it.ID.String())
	kit.WriteJSON(w, http.StatusCreated, it)
	return nil
}

func itemNotFound(id string) error {
	return kit.NotFound(fmt.Sprintf("item with id %s not found", id))
}

type createItemBody struct {
	Name  string          `json:"name"`
	Price json.RawMessage `json:"price"`
}

func decodeCreateRequest(w http.ResponseWriter, r *http.Request) (CreateItemRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var body createItemBody
	if err := dec.Decode(&body); err != nil {
		return CreateItemRequest{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return CreateItemRequest{}, errors.New("extra data after json object")
	}

	price, err := ParsePrice(body.Price)
	if err != nil {
		return CreateItemRequest{}, err
	}
	return CreateItemRequest{Name: body.Name, Price: price}, nil
}
