package tracker

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"medicine-tracker/internal/domain/dosing"
	"medicine-tracker/internal/domain/medications"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc))
		mr.Post("/", createMedicationHandler(svc))

		// Vuelve a pedir la lista al backend (reinicia el checklist salvo config).
		mr.Post("/refresh", refreshHandler(svc))

		mr.Patch("/{medicationID}", updateMedicationHandler(svc))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc))
		mr.Post("/{medicationID}/take-dose", takeDoseHandler(svc))
	})

	r.Get("/checklist", checklistHandler(svc))
	r.Put("/checklist/{medicationID}/slots/{slot}", setTakenHandler(svc))
	r.Get("/progress", progressHandler(svc))
	r.Get("/reminders", remindersHandler(svc))
	r.Get("/schedule", scheduleHandler(svc))
}

// medicationRequest es el cuerpo del alta; exp_date en formato YYYY-MM-DD.
type medicationRequest struct {
	Name      string                `json:"name"`
	Quantity  int                   `json:"quantity"`
	Unit      string                `json:"unit"`
	ExpDate   string                `json:"exp_date"`
	Frequency medications.Frequency `json:"frequency" enums:"once-a-day,twice-a-day,three-times-a-day"`
	Notes     string                `json:"notes"`
}

// updateMedicationRequest: punteros para PATCH real, nil = no tocar.
type updateMedicationRequest struct {
	Name      *string                `json:"name"`
	Quantity  *int                   `json:"quantity"`
	Unit      *string                `json:"unit"`
	ExpDate   *string                `json:"exp_date"`
	Frequency *medications.Frequency `json:"frequency"`
	Notes     *string                `json:"notes"`
}

// medicationResponse es una fila del inventario con sus tags de estilo.
type medicationResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Quantity     int                   `json:"quantity"`
	Unit         string                `json:"unit,omitempty"`
	ExpDate      string                `json:"exp_date"`
	Frequency    medications.Frequency `json:"frequency"`
	Notes        string                `json:"notes,omitempty"`
	ExpiringSoon bool                  `json:"expiring_soon"`
	Expired      bool                  `json:"expired"`
}

type progressResponse struct {
	Taken      int    `json:"taken"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Text       string `json:"text"`
}

type slotResponse struct {
	MedicationID   string `json:"medication_id"`
	MedicationName string `json:"medication_name"`
	Slot           int    `json:"slot"`
	Time           string `json:"time,omitempty"` // vacío para frecuencias sin horario
	Taken          bool   `json:"taken"`
}

type checklistResponse struct {
	Slots    []slotResponse   `json:"slots"`
	Progress progressResponse `json:"progress"`
}

type setTakenRequest struct {
	Taken bool `json:"taken"`
}

type setTakenResponse struct {
	Progress  progressResponse `json:"progress"`
	Celebrate bool             `json:"celebrate"`
}

type reminderResponse struct {
	MedicationID   string `json:"medication_id"`
	MedicationName string `json:"medication_name"`
	Slot           int    `json:"slot"`
	Time           string `json:"time"`
}

// listMedicationsHandler godoc
// @Summary Listar inventario
// @Description Lista los medicamentos del último snapshot, marcando los que vencen en menos de 7 días. Permite buscar por nombre y filtrar por cantidad máxima o fecha de vencimiento máxima.
// @Tags medications
// @Produce json
// @Param q query string false "Texto a buscar en el nombre (case-insensitive)"
// @Param filter_type query string false "quantity | expiration-date"
// @Param filter_value query string false "Entero (quantity) o YYYY-MM-DD (expiration-date). Vacío = sin filtro"
// @Success 200 {array} medicationResponse
// @Failure 400 {string} string "filtro inválido"
// @Failure 502 {string} string "backend unavailable"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.Inventory(r.Context(), medications.Filter{
			Query: q.Get("q"),
			Type:  medications.FilterType(strings.TrimSpace(q.Get("filter_type"))),
			Value: q.Get("filter_value"),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toMedicationResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createMedicationHandler godoc
// @Summary Alta de medicamento
// @Description Crea el medicamento en el backend y vuelve a pedir la lista.
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body medicationRequest true "Datos del medicamento"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 502 {string} string "backend unavailable"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), medications.CreateInput{
			Name:           req.Name,
			Quantity:       req.Quantity,
			Unit:           req.Unit,
			ExpirationDate: req.ExpDate,
			Frequency:      req.Frequency,
			Notes:          req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicationResponse(svc.item(m)))
	}
}

// updateMedicationHandler godoc
// @Summary Editar medicamento
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body updateMedicationRequest true "Campos a modificar"
// @Success 200 {object} medicationResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [patch]
func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateMedicationRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Update(r.Context(), chi.URLParam(r, "medicationID"), medications.UpdateInput{
			Name:           req.Name,
			Quantity:       req.Quantity,
			Unit:           req.Unit,
			ExpirationDate: req.ExpDate,
			Frequency:      req.Frequency,
			Notes:          req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(svc.item(m)))
	}
}

// deleteMedicationHandler godoc
// @Summary Borrar medicamento
// @Tags medications
// @Param medicationID path string true "ID del medicamento"
// @Success 204
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "medicationID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// takeDoseHandler godoc
// @Summary Tomar una dosis
// @Description Descuenta una unidad del stock. Con cantidad 0 responde 409 sin llamar al backend.
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} medicationResponse
// @Failure 404 {string} string "medication not found"
// @Failure 409 {string} string "out of stock"
// @Router /medications/{medicationID}/take-dose [post]
func takeDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.TakeDose(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(svc.item(m)))
	}
}

// refreshHandler godoc
// @Summary Refrescar snapshot
// @Tags medications
// @Produce json
// @Success 200 {array} medicationResponse
// @Failure 502 {string} string "backend unavailable"
// @Router /medications/refresh [post]
func refreshHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Refresh(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]medicationResponse, 0, len(list))
		for _, m := range list {
			out = append(out, toMedicationResponse(svc.item(m)))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// checklistHandler godoc
// @Summary Checklist del día
// @Description Todos los slots de dosis del día con su estado y el progreso. Frecuencias desconocidas cuentan como un slot sin horario.
// @Tags checklist
// @Produce json
// @Success 200 {object} checklistResponse
// @Router /checklist [get]
func checklistHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Checklist(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := checklistResponse{
			Slots:    make([]slotResponse, 0, len(c.Slots)),
			Progress: toProgressResponse(c.Progress),
		}
		for _, s := range c.Slots {
			sr := slotResponse{
				MedicationID:   s.MedicationID,
				MedicationName: s.MedicationName,
				Slot:           s.Index,
				Taken:          s.Taken,
			}
			if s.Scheduled {
				sr.Time = s.Time.String()
			}
			out.Slots = append(out.Slots, sr)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// setTakenHandler godoc
// @Summary Marcar dosis
// @Description Marca o desmarca un slot. celebrate=true cuando el progreso llega al 100% (según la política configurada).
// @Tags checklist
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param slot path int true "Índice del slot (1-based)"
// @Param payload body setTakenRequest true "Estado"
// @Success 200 {object} setTakenResponse
// @Failure 400 {string} string "invalid json / slot inválido"
// @Failure 404 {string} string "dose slot not found"
// @Router /checklist/{medicationID}/slots/{slot} [put]
func setTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
		if err != nil || slot < 1 {
			http.Error(w, "slot must be a positive integer", http.StatusBadRequest)
			return
		}

		var req setTakenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.SetTaken(r.Context(), chi.URLParam(r, "medicationID"), slot, req.Taken)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, setTakenResponse{
			Progress:  toProgressResponse(res.Progress),
			Celebrate: res.Celebrate,
		})
	}
}

// progressHandler godoc
// @Summary Progreso del día
// @Tags checklist
// @Produce json
// @Success 200 {object} progressResponse
// @Router /progress [get]
func progressHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Progress(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProgressResponse(p))
	}
}

// remindersHandler godoc
// @Summary Recordatorios pendientes
// @Description Slots no tomados cuyo horario coincide exactamente con `at` (HH:MM). Sin `at` usa la hora actual del servidor.
// @Tags reminders
// @Produce json
// @Param at query string false "Hora HH:MM"
// @Success 200 {array} reminderResponse
// @Failure 400 {string} string "at must be HH:MM"
// @Router /reminders [get]
func remindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at := strings.TrimSpace(r.URL.Query().Get("at"))
		if at == "" {
			at = dosing.ClockOf(svc.now()).String()
		} else if _, err := dosing.ParseClock(at); err != nil {
			http.Error(w, "at must be HH:MM", http.StatusBadRequest)
			return
		}

		due, err := svc.RemindersAt(r.Context(), at)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]reminderResponse, 0, len(due))
		for _, d := range due {
			out = append(out, reminderResponse{
				MedicationID:   d.MedicationID,
				MedicationName: d.MedicationName,
				Slot:           d.SlotIndex,
				Time:           d.Time.String(),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// scheduleHandler godoc
// @Summary Tabla de horarios
// @Description Frecuencia -> horarios del día, tal como está configurada.
// @Tags reminders
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /schedule [get]
func scheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, svc.Schedule().Table())
	}
}

// item etiqueta un medicamento suelto con la hora actual del servicio.
func (s *Service) item(m medications.Medication) InventoryItem {
	now := s.now()
	return InventoryItem{
		Medication:   m,
		ExpiringSoon: dosing.ExpiringSoon(m, now),
		Expired:      dosing.Expired(m, now),
	}
}

func toMedicationResponse(it InventoryItem) medicationResponse {
	m := it.Medication
	return medicationResponse{
		ID:           m.ID,
		Name:         m.Name,
		Quantity:     m.Quantity,
		Unit:         m.Unit,
		ExpDate:      m.ExpirationDate,
		Frequency:    m.Frequency,
		Notes:        m.Notes,
		ExpiringSoon: it.ExpiringSoon,
		Expired:      it.Expired,
	}
}

func toProgressResponse(p dosing.ProgressSummary) progressResponse {
	return progressResponse{
		Taken:      p.Taken,
		Total:      p.Total,
		Percentage: p.Percentage,
		Text:       p.Text(),
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, medications.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, medications.ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	case errors.Is(err, ErrSlotNotFound):
		http.Error(w, "dose slot not found", http.StatusNotFound)
	case errors.Is(err, medications.ErrOutOfStock):
		http.Error(w, "out of stock", http.StatusConflict)
	default:
		http.Error(w, "backend unavailable", http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
