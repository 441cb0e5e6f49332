package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/rainwater-advisor/internal/advisor"
	"github.com/jonathan/rainwater-advisor/internal/schemas"
	"github.com/jonathan/rainwater-advisor/internal/types"
	schemafiles "github.com/jonathan/rainwater-advisor/schemas"
)

const (
	maxBodyBytes    = 1 << 20
	maxSweepValues  = 200
	eventStep       = "step"
	eventAssessment = "assessment"
)

// StructureSpecsRequest is the body of POST /structure-specs
type StructureSpecsRequest struct {
	Input      json.RawMessage `json:"input"`
	SystemType string          `json:"system_type"`
}

// SweepRequest is the body of POST /sweep
type SweepRequest struct {
	Input  json.RawMessage `json:"input"`
	Param  string          `json:"param"`
	Values []float64       `json:"values"`
}

// SweepResponse is returned by POST /sweep
type SweepResponse struct {
	Param string             `json:"param"`
	Rows  []advisor.SweepRow `json:"rows"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRecommend scores a site and returns the recommended system
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	in, err := s.readSiteInput(r.Body)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	rec, err := advisor.AnalyzeAndRecommend(in)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleStructureSpecs sizes and prices a given system type
func (s *Server) handleStructureSpecs(w http.ResponseWriter, r *http.Request) {
	var req StructureSpecsRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	archetype, ok := types.ParseArchetype(req.SystemType)
	if !ok {
		s.errResponse(w, &ErrValidation{Field: "system_type", Message: fmt.Sprintf("unknown system type %q", req.SystemType)})
		return
	}
	in, err := decodeSiteInput(req.Input)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	specs, err := advisor.GenerateStructureSpecs(in, archetype)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, specs)
}

// handleSweep re-evaluates a site across values of one parameter
func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Values) == 0 {
		s.errResponse(w, &ErrValidation{Field: "values", Message: "at least one value is required"})
		return
	}
	if len(req.Values) > maxSweepValues {
		s.errResponse(w, &ErrValidation{Field: "values", Message: fmt.Sprintf("at most %d values are allowed", maxSweepValues)})
		return
	}

	in, err := decodeSiteInput(req.Input)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	rows, err := advisor.Sweep(r.Context(), in, req.Param, req.Values)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SweepResponse{Param: req.Param, Rows: rows})
}

// handleCreateAssessment runs a full assessment and stores it
func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	in, err := s.readSiteInput(r.Body)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	a, err := s.assessAndSave(r.Context(), s.advisor, in)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	w.Header().Set("Location", "/assessments/"+a.ID.String())
	s.jsonResponse(w, http.StatusCreated, a)
}

// handleCreateAssessmentStream is handleCreateAssessment with progress
// reported as server-sent events
func (s *Server) handleCreateAssessmentStream(w http.ResponseWriter, r *http.Request) {
	in, err := s.readSiteInput(r.Body)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	adv := s.advisor.With(advisor.WithProgress(func(event advisor.ProgressEvent) {
		if err := sse.WriteEvent(eventStep, event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}))

	a, err := s.assessAndSave(r.Context(), adv, in)
	if err != nil {
		log.Printf("Streaming assessment failed: %v", err)
		sse.WriteError(err)
		return
	}
	sse.WriteEvent(eventAssessment, a) //nolint:errcheck
}

func (s *Server) assessAndSave(ctx context.Context, adv *advisor.Advisor, in types.SiteInput) (*types.Assessment, error) {
	a, err := adv.Assess(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveAssessment(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to store assessment: %w", err)
	}
	return a, nil
}

// handleListAssessments returns stored assessment summaries
func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.errResponse(w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		s.errResponse(w, err)
		return
	}

	summaries, err := s.store.ListAssessments(r.Context(), limit, offset)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"assessments": summaries,
		"count":       len(summaries),
	})
}

// handleGetAssessment returns one stored assessment
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	a, err := s.store.GetAssessment(r.Context(), id)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if a == nil {
		s.errResponse(w, &ErrAssessmentNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, a)
}

// handleDeleteAssessment removes a stored assessment
func (s *Server) handleDeleteAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	deleted, err := s.store.DeleteAssessment(r.Context(), id)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if !deleted {
		s.errResponse(w, &ErrAssessmentNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// readSiteInput reads a request body and decodes it as a SiteInput.
func (s *Server) readSiteInput(body io.Reader) (types.SiteInput, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return types.SiteInput{}, fmt.Errorf("failed to read request body: %w", err)
	}
	return decodeSiteInput(data)
}

// decodeSiteInput checks raw JSON against the site input schema before
// decoding it.
func decodeSiteInput(data []byte) (types.SiteInput, error) {
	var in types.SiteInput
	if len(data) == 0 {
		return in, &ErrValidation{Field: "input", Message: "site input is required"}
	}
	if err := schemas.ValidateDocument(schemafiles.SiteInput, data); err != nil {
		if HTTPStatus(err) == http.StatusBadRequest {
			return in, err
		}
		return in, &ErrValidation{Field: "input", Message: err.Error()}
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, &ErrValidation{Field: "input", Message: err.Error()}
	}
	return in, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "assessment ID is required"}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid assessment ID format"}
	}
	return id, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: key, Message: "must be a non-negative integer"}
	}
	return n, nil
}
