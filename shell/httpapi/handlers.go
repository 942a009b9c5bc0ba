package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/features/command/addingbook"
	"github.com/AntonStoeckl/library-lending-go/features/command/cancelinghold"
	"github.com/AntonStoeckl/library-lending-go/features/command/checkingoutbook"
	"github.com/AntonStoeckl/library-lending-go/features/command/creatingpatron"
	"github.com/AntonStoeckl/library-lending-go/features/command/placinghold"
	"github.com/AntonStoeckl/library-lending-go/features/command/returningbook"
	"github.com/AntonStoeckl/library-lending-go/features/query/patronprofile"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

// CreatesPatrons defines the interface needed to handle create-patron requests.
type CreatesPatrons interface {
	Handle(ctx context.Context, command creatingpatron.Command) error
}

// AddsBooks defines the interface needed to handle add-book requests.
type AddsBooks interface {
	Handle(ctx context.Context, command addingbook.Command) error
}

// PlacesHolds defines the interface needed to handle place-hold requests.
type PlacesHolds interface {
	Handle(ctx context.Context, command placinghold.Command) error
}

// CancelsHolds defines the interface needed to handle cancel-hold requests.
type CancelsHolds interface {
	Handle(ctx context.Context, command cancelinghold.Command) error
}

// ChecksOutBooks defines the interface needed to handle check-out requests.
type ChecksOutBooks interface {
	Handle(ctx context.Context, command checkingoutbook.Command) error
}

// ReturnsBooks defines the interface needed to handle return-book requests.
type ReturnsBooks interface {
	Handle(ctx context.Context, command returningbook.Command) error
}

// AnswersPatronProfile defines the interface needed to handle profile requests.
type AnswersPatronProfile interface {
	Handle(ctx context.Context, query patronprofile.Query) (patronprofile.PatronProfile, error)
}

const (
	logMsgCommandHandled = "command handled"

	commandTypeCreatePatron = "create-patron"
	commandTypeAddBook      = "add-book"
	commandTypePlaceHold    = "place-hold"
	commandTypeCancelHold   = "cancel-hold"
	commandTypeCheckOut     = "check-out-book"
	commandTypeReturnBook   = "return-book"
)

// HTTPHandlers adapts HTTP requests to the feature command and query handlers.
type HTTPHandlers struct {
	createPatron     CreatesPatrons
	addBook          AddsBooks
	placeHold        PlacesHolds
	cancelHold       CancelsHolds
	checkOutBook     ChecksOutBooks
	returnBook       ReturnsBooks
	patronProfile    AnswersPatronProfile
	clock            shell.Clock
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option defines a functional option for configuring the HTTP handler set.
type Option func(*HTTPHandlers)

// WithLogger sets the logger for command outcome logging.
func WithLogger(logger shell.Logger) Option {
	return func(h *HTTPHandlers) {
		h.logger = logger
	}
}

// WithContextualLogger sets the context-aware logger, preferred over the plain
// logger when both are configured.
func WithContextualLogger(contextualLogger shell.ContextualLogger) Option {
	return func(h *HTTPHandlers) {
		h.contextualLogger = contextualLogger
	}
}

// NewHTTPHandlers creates the HTTP handler set with the supplied feature handlers.
func NewHTTPHandlers(
	createPatron CreatesPatrons,
	addBook AddsBooks,
	placeHold PlacesHolds,
	cancelHold CancelsHolds,
	checkOutBook ChecksOutBooks,
	returnBook ReturnsBooks,
	patronProfile AnswersPatronProfile,
	clock shell.Clock,
	options ...Option,
) HTTPHandlers {

	handlers := HTTPHandlers{
		createPatron:  createPatron,
		addBook:       addBook,
		placeHold:     placeHold,
		cancelHold:    cancelHold,
		checkOutBook:  checkOutBook,
		returnBook:    returnBook,
		patronProfile: patronProfile,
		clock:         clock,
	}

	for _, option := range options {
		option(&handlers)
	}

	return handlers
}

type createPatronRequest struct {
	PatronID   uuid.UUID `json:"patron_id"`
	PatronType string    `json:"patron_type"`
}

type addBookRequest struct {
	BookID   uuid.UUID `json:"book_id"`
	BookType string    `json:"book_type"`
}

type placeHoldRequest struct {
	BookID       uuid.UUID `json:"book_id"`
	NumberOfDays int       `json:"number_of_days"`
	OpenEnded    bool      `json:"open_ended"`
}

type checkOutRequest struct {
	BookID       uuid.UUID `json:"book_id"`
	NumberOfDays int       `json:"number_of_days"`
}

type returnBookRequest struct {
	BookID uuid.UUID `json:"book_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleCreatePatron handles POST /patrons.
func (h HTTPHandlers) HandleCreatePatron(w http.ResponseWriter, r *http.Request) {
	var req createPatronRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
		writeError(w, http.StatusBadRequest, decodeErr)
		return
	}

	command, buildErr := creatingpatron.BuildCommand(req.PatronID, core.PatronType(req.PatronType), h.clock.Now())
	if buildErr != nil {
		writeError(w, http.StatusBadRequest, buildErr)
		return
	}

	if handleErr := h.createPatron.Handle(r.Context(), command); handleErr != nil {
		h.failCommand(w, r, commandTypeCreatePatron, handleErr)
		return
	}

	h.logCommandStatus(r.Context(), commandTypeCreatePatron, shell.StatusSuccess)
	w.WriteHeader(http.StatusCreated)
}

// HandleAddBook handles POST /books.
func (h HTTPHandlers) HandleAddBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
		writeError(w, http.StatusBadRequest, decodeErr)
		return
	}

	command, buildErr := addingbook.BuildCommand(req.BookID, core.BookType(req.BookType), h.clock.Now())
	if buildErr != nil {
		writeError(w, http.StatusBadRequest, buildErr)
		return
	}

	if handleErr := h.addBook.Handle(r.Context(), command); handleErr != nil {
		h.failCommand(w, r, commandTypeAddBook, handleErr)
		return
	}

	h.logCommandStatus(r.Context(), commandTypeAddBook, shell.StatusSuccess)
	w.WriteHeader(http.StatusCreated)
}

// HandlePlaceHold handles POST /patrons/{patronID}/holds.
func (h HTTPHandlers) HandlePlaceHold(w http.ResponseWriter, r *http.Request) {
	patronID, patronIDErr := patronIDFromURL(r)
	if patronIDErr != nil {
		writeError(w, http.StatusBadRequest, patronIDErr)
		return
	}

	var req placeHoldRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
		writeError(w, http.StatusBadRequest, decodeErr)
		return
	}

	var command placinghold.Command

	if req.OpenEnded {
		command = placinghold.BuildCommandWithOpenEndedHold(patronID, req.BookID, h.clock.Now())
	} else {
		var buildErr error
		command, buildErr = placinghold.BuildCommand(patronID, req.BookID, req.NumberOfDays, h.clock.Now())
		if buildErr != nil {
			writeError(w, http.StatusBadRequest, buildErr)
			return
		}
	}

	if handleErr := h.placeHold.Handle(r.Context(), command); handleErr != nil {
		h.failCommand(w, r, commandTypePlaceHold, handleErr)
		return
	}

	h.logCommandStatus(r.Context(), commandTypePlaceHold, shell.StatusSuccess)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCancelHold handles DELETE /patrons/{patronID}/holds/{bookID}.
func (h HTTPHandlers) HandleCancelHold(w http.ResponseWriter, r *http.Request) {
	patronID, patronIDErr := patronIDFromURL(r)
	if patronIDErr != nil {
		writeError(w, http.StatusBadRequest, patronIDErr)
		return
	}

	bookID, bookIDErr := uuid.Parse(chi.URLParam(r, "bookID"))
	if bookIDErr != nil {
		writeError(w, http.StatusBadRequest, bookIDErr)
		return
	}

	command := cancelinghold.BuildCommand(patronID, bookID, h.clock.Now())

	if handleErr := h.cancelHold.Handle(r.Context(), command); handleErr != nil {
		h.failCommand(w, r, commandTypeCancelHold, handleErr)
		return
	}

	h.logCommandStatus(r.Context(), commandTypeCancelHold, shell.StatusSuccess)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCheckOutBook handles POST /patrons/{patronID}/checkouts.
func (h HTTPHandlers) HandleCheckOutBook(w http.ResponseWriter, r *http.Request) {
	patronID, patronIDErr := patronIDFromURL(r)
	if patronIDErr != nil {
		writeError(w, http.StatusBadRequest, patronIDErr)
		return
	}

	var req checkOutRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
		writeError(w, http.StatusBadRequest, decodeErr)
		return
	}

	command, buildErr := checkingoutbook.BuildCommand(patronID, req.BookID, req.NumberOfDays, h.clock.Now())
	if buildErr != nil {
		writeError(w, http.StatusBadRequest, buildErr)
		return
	}

	if handleErr := h.checkOutBook.Handle(r.Context(), command); handleErr != nil {
		h.failCommand(w, r, commandTypeCheckOut, handleErr)
		return
	}

	h.logCommandStatus(r.Context(), commandTypeCheckOut, shell.StatusSuccess)
	w.WriteHeader(http.StatusNoContent)
}

// HandleReturnBook handles POST /patrons/{patronID}/returns.
func (h HTTPHandlers) HandleReturnBook(w http.ResponseWriter, r *http.Request) {
	patronID, patronIDErr := patronIDFromURL(r)
	if patronIDErr != nil {
		writeError(w, http.StatusBadRequest, patronIDErr)
		return
	}

	var req returnBookRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
		writeError(w, http.StatusBadRequest, decodeErr)
		return
	}

	command := returningbook.BuildCommand(patronID, req.BookID, h.clock.Now())

	if handleErr := h.returnBook.Handle(r.Context(), command); handleErr != nil {
		h.failCommand(w, r, commandTypeReturnBook, handleErr)
		return
	}

	h.logCommandStatus(r.Context(), commandTypeReturnBook, shell.StatusSuccess)
	w.WriteHeader(http.StatusNoContent)
}

// HandlePatronProfile handles GET /patrons/{patronID}/profile.
func (h HTTPHandlers) HandlePatronProfile(w http.ResponseWriter, r *http.Request) {
	patronID, patronIDErr := patronIDFromURL(r)
	if patronIDErr != nil {
		writeError(w, http.StatusBadRequest, patronIDErr)
		return
	}

	profile, handleErr := h.patronProfile.Handle(r.Context(), patronprofile.BuildQuery(patronID))
	if handleErr != nil {
		writeMappedError(w, handleErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(profileResponseFrom(profile))
}

func patronIDFromURL(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "patronID"))
}

// failCommand logs the failed command and writes the mapped error response.
func (h HTTPHandlers) failCommand(w http.ResponseWriter, r *http.Request, commandType string, err error) {
	shell.LogCommandError(r.Context(), h.logger, h.contextualLogger, commandType, err)
	h.logCommandStatus(r.Context(), commandType, commandStatusOf(err))
	writeMappedError(w, err)
}

func (h HTTPHandlers) logCommandStatus(ctx context.Context, commandType string, status string) {
	args := []any{
		shell.LogAttrCommandType, commandType,
		shell.LogAttrStatus, status,
	}

	if h.contextualLogger != nil {
		h.contextualLogger.DebugContext(ctx, logMsgCommandHandled, args...)
	} else if h.logger != nil {
		h.logger.Debug(logMsgCommandHandled, args...)
	}
}

func commandStatusOf(err error) string {
	switch {
	case err == nil:
		return shell.StatusSuccess

	case isNotFound(err), isDomainRejection(err):
		return shell.StatusRejected

	default:
		return shell.StatusError
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, shell.ErrBookNotFound) || errors.Is(err, shell.ErrPatronNotFound)
}

func isDomainRejection(err error) bool {
	return errors.Is(err, core.ErrHoldRejected) ||
		errors.Is(err, core.ErrBookNotHeld) ||
		errors.Is(err, core.ErrInvalidDuration) ||
		errors.Is(err, core.ErrInvalidState)
}

// writeMappedError maps feature errors to status codes: unknown aggregates are
// 404, domain rejections are 422, everything else is a 500.
func writeMappedError(w http.ResponseWriter, err error) {
	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, err)

	case isDomainRejection(err):
		writeError(w, http.StatusUnprocessableEntity, err)

	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
