package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/formatix/erp/modules/scheduling/infrastructure/excel"
	"github.com/formatix/erp/modules/scheduling/presentation/controllers/dtos"
	"github.com/formatix/erp/modules/scheduling/services"
	"github.com/formatix/erp/pkg/application"
	"github.com/formatix/erp/pkg/mapping"
	"github.com/formatix/erp/pkg/middleware"
	"github.com/formatix/erp/pkg/serrors"
)

type SchedulingController struct {
	importService  *services.ImportService
	sessionService *services.SessionService
	roomService    *services.RoomService
	trainerService *services.TrainerService
	basePath       string
	maxUploadSize  int64
}

func NewSchedulingController(app application.Application, maxUploadSize int64) application.Controller {
	return &SchedulingController{
		importService:  app.Service(services.ImportService{}).(*services.ImportService),
		sessionService: app.Service(services.SessionService{}).(*services.SessionService),
		roomService:    app.Service(services.RoomService{}).(*services.RoomService),
		trainerService: app.Service(services.TrainerService{}).(*services.TrainerService),
		basePath:       "/scheduling",
		maxUploadSize:  maxUploadSize,
	}
}

func (c *SchedulingController) Key() string {
	return c.basePath
}

func (c *SchedulingController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/deals/{dealID}/sessions", c.ListSessions).Methods(http.MethodGet)
	router.HandleFunc("/deals/{dealID}/sessions/import", c.ImportSessions).Methods(http.MethodPost)
	router.HandleFunc("/deals/{dealID}/sessions/import-file", c.ImportSessionsFile).Methods(http.MethodPost)
	router.HandleFunc("/rooms", c.ListRooms).Methods(http.MethodGet)
	router.HandleFunc("/trainers/search", c.SearchTrainers).Methods(http.MethodGet)
}

// ImportSessions accepts a JSON batch of spreadsheet rows and
// reconciles them against the deal's existing sessions.
func (c *SchedulingController) ImportSessions(w http.ResponseWriter, r *http.Request) {
	dealID, ok := c.dealID(w, r)
	if !ok {
		return
	}

	var req dtos.ImportSessionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, serrors.CodeValidation, "invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, serrors.CodeValidation, "invalid import payload", dtos.FieldErrors(err).Flatten())
		return
	}

	result, err := c.importService.ImportSessions(r.Context(), dealID, req.ToRawRows())
	if err != nil {
		c.logImportFailure(r, dealID, err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ImportSessionsFile accepts a multipart upload with an .xlsx workbook
// under the "file" field.
func (c *SchedulingController) ImportSessionsFile(w http.ResponseWriter, r *http.Request) {
	dealID, ok := c.dealID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(c.maxUploadSize); err != nil {
		writeJSONError(w, http.StatusBadRequest, serrors.CodeValidation, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, serrors.CodeValidation, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	raws, err := excel.ReadSessionRows(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, serrors.CodeValidation, "unreadable workbook")
		return
	}

	result, err := c.importService.ImportSessions(r.Context(), dealID, raws)
	if err != nil {
		c.logImportFailure(r, dealID, err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (c *SchedulingController) ListSessions(w http.ResponseWriter, r *http.Request) {
	dealID, ok := c.dealID(w, r)
	if !ok {
		return
	}
	sessions, err := c.sessionService.GetByDealID(r.Context(), dealID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.MapViewModels(sessions, dtos.SessionToResponse))
}

func (c *SchedulingController) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.roomService.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.MapViewModels(rooms, dtos.RoomToResponse))
}

// SearchTrainers ranks trainers against the q parameter with fuzzy,
// accent-insensitive matching.
func (c *SchedulingController) SearchTrainers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	trainers, err := c.trainerService.Search(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.MapViewModels(trainers, dtos.TrainerToResponse))
}

func (c *SchedulingController) dealID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["dealID"])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, serrors.CodeValidation, "dealID must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (c *SchedulingController) logImportFailure(r *http.Request, dealID uuid.UUID, err error) {
	middleware.UseLogger(r.Context()).WithFields(logrus.Fields{
		"dealId": dealID,
	}).WithError(err).Error("session import failed")
}
