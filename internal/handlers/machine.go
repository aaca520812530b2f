package handlers

import (
	"MachineCatalog/internal/blob"
	"MachineCatalog/internal/config"
	"MachineCatalog/internal/middleware"
	"MachineCatalog/internal/model"
	"MachineCatalog/internal/repo"
	"MachineCatalog/internal/service"
	"MachineCatalog/internal/views"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Тексты flash-сообщений.
const (
	msgMachineAdded   = "Machine added successfully"
	msgMachineUpdated = "Machine updated successfully"
	msgMachineRemoved = "Machine removed successfully"
	msgInvalidImage   = "Only image files (.jpg, .jpeg, .png, .gif) are allowed"
	msgImageTooLarge  = "Image is too large"
	msgTitleRequired  = "Title is required"
	msgSomethingWrong = "Something went wrong"
)

// MachineHandler обрабатывает CRUD станков каталога.
type MachineHandler struct {
	MachineService *service.MachineService
	Logger         *zap.SugaredLogger
	Config         *config.Config
	pages          *pages
}

// NewMachineHandler создаёт хендлер станков
func NewMachineHandler(machineService *service.MachineService, pg *pages, logger *zap.SugaredLogger, cfg *config.Config) *MachineHandler {
	return &MachineHandler{MachineService: machineService, Logger: logger, Config: cfg, pages: pg}
}

var errTitleRequired = errors.New("title required")

// machineForm — разобранная форма станка с опциональным файлом.
type machineForm struct {
	fields model.MachineFields
	image  *blob.Object
	close  func()
}

// parseMachineForm читает multipart (или urlencoded) форму. Файл в поле image
// необязателен; close надо вызвать после обработки.
func (h *MachineHandler) parseMachineForm(w http.ResponseWriter, r *http.Request) (*machineForm, error) {
	// Лимит общего тела запроса: картинка + поля
	maxBody := h.Config.UploadMaxBytes() + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, service.ErrInvalidImage
			}
			return nil, err
		}
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}

	form := &machineForm{
		fields: model.MachineFields{
			Title:       strings.TrimSpace(r.FormValue("machine[title]")),
			Description: strings.TrimSpace(r.FormValue("machine[description]")),
		},
		close: func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		},
	}
	if form.fields.Title == "" {
		form.close()
		return nil, errTitleRequired
	}

	file, hdr, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return form, nil
	case err != nil:
		form.close()
		return nil, err
	}

	form.image = &blob.Object{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Body:        file,
	}
	cleanup := form.close
	form.close = func() {
		_ = file.Close()
		cleanup()
	}
	return form, nil
}

// formErrorMessage текст flash для ошибки разбора/валидации формы.
func formErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrImageTooLarge):
		return msgImageTooLarge
	case errors.Is(err, service.ErrInvalidImage):
		return msgInvalidImage
	case errors.Is(err, errTitleRequired):
		return msgTitleRequired
	default:
		return msgSomethingWrong
	}
}

// List список станков
func (h *MachineHandler) List(w http.ResponseWriter, r *http.Request) {
	machines, err := h.MachineService.List(r.Context())
	if err != nil {
		h.Logger.Errorw("List: service error", "error", err)
		h.pages.errorPage(w, r, http.StatusInternalServerError, "Could not load machines")
		return
	}
	h.pages.render(w, r, http.StatusOK, views.PageIndex, views.Page{Title: "Machines", Machines: machines})
}

// New форма создания
func (h *MachineHandler) New(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, r, http.StatusOK, views.PageNew, views.Page{Title: "New machine"})
}

// Create создание станка (картинка опциональна)
func (h *MachineHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseMachineForm(w, r)
	if err != nil {
		h.Logger.Warnw("Create: invalid form", "error", err)
		redirectWithFlash(w, r, middleware.FlashError, formErrorMessage(err), "/machines/new")
		return
	}
	defer form.close()

	m, err := h.MachineService.Create(r.Context(), form.fields, form.image)
	switch {
	case errors.Is(err, service.ErrInvalidImage):
		h.Logger.Warnw("Create: rejected image", "error", err)
		redirectWithFlash(w, r, middleware.FlashError, formErrorMessage(err), "/machines/new")
		return
	case err != nil:
		h.Logger.Errorw("Create: service error", "error", err)
		redirectWithFlash(w, r, middleware.FlashError, msgSomethingWrong, "/machines/new")
		return
	}

	h.Logger.Infow("machine created", "id", m.ID, "with_image", m.HasImage())
	redirectWithFlash(w, r, middleware.FlashAddEdit, msgMachineAdded, "/machines")
}

// loadMachine достаёт станок по {id}; при ошибке сам пишет ответ и возвращает nil.
func (h *MachineHandler) loadMachine(w http.ResponseWriter, r *http.Request) *model.Machine {
	id := chi.URLParam(r, "id")
	m, err := h.MachineService.Get(r.Context(), id)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		h.pages.errorPage(w, r, http.StatusNotFound, "Machine not found")
		return nil
	case err != nil:
		h.Logger.Errorw("load machine: service error", "id", id, "error", err)
		h.pages.errorPage(w, r, http.StatusInternalServerError, "Could not load machine")
		return nil
	}
	return m
}

// Show карточка станка
func (h *MachineHandler) Show(w http.ResponseWriter, r *http.Request) {
	m := h.loadMachine(w, r)
	if m == nil {
		return
	}
	h.pages.render(w, r, http.StatusOK, views.PageShow, views.Page{Title: m.Title, Machine: m})
}

// Edit форма редактирования
func (h *MachineHandler) Edit(w http.ResponseWriter, r *http.Request) {
	m := h.loadMachine(w, r)
	if m == nil {
		return
	}
	h.pages.render(w, r, http.StatusOK, views.PageEdit, views.Page{Title: "Edit " + m.Title, Machine: m})
}

// Update обновление станка; новая картинка заменяет старую
func (h *MachineHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	editURL := "/machines/" + id + "/edit"

	form, err := h.parseMachineForm(w, r)
	if err != nil {
		h.Logger.Warnw("Update: invalid form", "id", id, "error", err)
		redirectWithFlash(w, r, middleware.FlashError, formErrorMessage(err), editURL)
		return
	}
	defer form.close()

	_, err = h.MachineService.Update(r.Context(), id, form.fields, form.image)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		h.pages.errorPage(w, r, http.StatusNotFound, "Machine not found")
		return
	case errors.Is(err, service.ErrInvalidImage):
		h.Logger.Warnw("Update: rejected image", "id", id, "error", err)
		redirectWithFlash(w, r, middleware.FlashError, formErrorMessage(err), editURL)
		return
	case err != nil:
		h.Logger.Errorw("Update: service error", "id", id, "error", err)
		redirectWithFlash(w, r, middleware.FlashError, msgSomethingWrong, "/machines")
		return
	}

	redirectWithFlash(w, r, middleware.FlashAddEdit, msgMachineUpdated, "/machines/"+id)
}

// Delete удаление станка вместе с картинкой
func (h *MachineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, err := h.MachineService.Delete(r.Context(), id)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		h.pages.errorPage(w, r, http.StatusNotFound, "Machine not found")
		return
	case err != nil:
		h.Logger.Errorw("Delete: service error", "id", id, "error", err)
		redirectWithFlash(w, r, middleware.FlashError, msgSomethingWrong, "/machines")
		return
	}

	h.Logger.Infow("machine deleted", "id", id)
	redirectWithFlash(w, r, middleware.FlashRemove, msgMachineRemoved, "/machines")
}
