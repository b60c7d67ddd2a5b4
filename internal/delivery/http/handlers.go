package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"wiseowl-server/internal/bria"
	"wiseowl-server/internal/delivery/http/middleware"
	"wiseowl-server/internal/model"
	"wiseowl-server/internal/service"

	"github.com/rs/zerolog/log"
)

// Handler представляет HTTP обработчик
type Handler struct {
	journeyService *service.JourneyService
}

// New создает новый экземпляр обработчика
func New(journeyService *service.JourneyService) *Handler {
	return &Handler{
		journeyService: journeyService,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *Handler) RegisterRoutes(router *mux.Router) {
	// Демо-маршрут регистрируется раньше /journeys/{id}, чтобы слово demo
	// не перехватывалось как идентификатор
	router.HandleFunc("/journeys/demo/{slug}", h.LoadDemoJourney).Methods("POST")

	// Маршруты для работы с путешествиями (относительно /api)
	router.HandleFunc("/journeys", h.CreateJourney).Methods("POST")
	router.HandleFunc("/journeys", h.ListJourneys).Methods("GET")
	router.HandleFunc("/journeys/{id}", h.GetJourney).Methods("GET")
	router.HandleFunc("/journeys/{id}", h.DeleteJourney).Methods("DELETE")
	router.HandleFunc("/journeys/{id}/certificate", h.GetCertificate).Methods("GET")
	router.HandleFunc("/journeys/{id}/variations", h.ListVariations).Methods("GET")
	router.HandleFunc("/journeys/{id}/scenes/{number}/quiz", h.SubmitQuiz).Methods("POST")
	router.HandleFunc("/journeys/{id}/scenes/{number}/regenerate", h.RegenerateScene).Methods("POST")

	// Чат с совой-наставником
	router.HandleFunc("/chat", h.Chat).Methods("POST")
}

// CreateJourneyRequest - тело запроса создания путешествия
type CreateJourneyRequest struct {
	Topic       string `json:"topic"`
	SubjectType string `json:"subject_type"`
}

// CreateJourney создает новое учебное путешествие
func (h *Handler) CreateJourney(w http.ResponseWriter, r *http.Request) {
	var req CreateJourneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("неверный формат запроса: %v", err))
		return
	}

	userID, ok := userIDFromRequest(w, r, "CreateJourney")
	if !ok {
		return
	}

	topic, scene, err := h.journeyService.CreateJourney(r.Context(), userID, req.Topic, model.SubjectType(req.SubjectType))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTopic):
			RespondWithError(w, http.StatusBadRequest, "тема не может быть пустой")
		case errors.Is(err, service.ErrInvalidSubjectType):
			RespondWithError(w, http.StatusBadRequest, "неподдерживаемый тип предмета")
		default:
			RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("ошибка при создании путешествия: %v", err))
		}
		return
	}

	RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"journey":     topic,
		"first_scene": scene,
	})
}

// ListJourneys возвращает путешествия пользователя со сводной статистикой
func (h *Handler) ListJourneys(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "ListJourneys")
	if !ok {
		return
	}

	journeys, stats, err := h.journeyService.ListJourneys(r.Context(), userID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("ошибка при получении списка путешествий: %v", err))
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"journeys": journeys,
		"stats":    stats,
	})
}

// GetJourney возвращает путешествие со всеми созданными сценами
func (h *Handler) GetJourney(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "неверный формат ID")
		return
	}

	userID, ok := userIDFromRequest(w, r, "GetJourney")
	if !ok {
		return
	}

	topic, scenes, err := h.journeyService.GetJourney(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			RespondWithError(w, http.StatusNotFound, "путешествие не найдено")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("ошибка при получении путешествия: %v", err))
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"journey": topic,
		"scenes":  scenes,
	})
}

// DeleteJourney удаляет путешествие пользователя
func (h *Handler) DeleteJourney(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "неверный формат ID")
		return
	}

	userID, ok := userIDFromRequest(w, r, "DeleteJourney")
	if !ok {
		return
	}

	if err := h.journeyService.DeleteJourney(r.Context(), userID, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			RespondWithError(w, http.StatusNotFound, "путешествие не найдено")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("ошибка при удалении путешествия: %v", err))
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "путешествие успешно удалено"})
}

// SubmitQuizRequest - тело запроса отправки ответов викторины
type SubmitQuizRequest struct {
	Answers []int `json:"answers"`
}

// SubmitQuiz принимает ответы викторины сцены
func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "неверный формат ID")
		return
	}
	sceneNumber, err := strconv.Atoi(vars["number"])
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "неверный формат номера сцены")
		return
	}

	userID, ok := userIDFromRequest(w, r, "SubmitQuiz")
	if !ok {
		return
	}

	var req SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("неверный формат запроса: %v", err))
		return
	}

	result, err := h.journeyService.SubmitQuiz(r.Context(), userID, id, sceneNumber, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSceneNumber):
			RespondWithError(w, http.StatusBadRequest, "номер сцены вне допустимого диапазона")
		case errors.Is(err, service.ErrMissingAnswers):
			RespondWithError(w, http.StatusBadRequest, "ответы не могут быть пустыми")
		case errors.Is(err, model.ErrNotFound):
			RespondWithError(w, http.StatusNotFound, "путешествие или сцена не найдены")
		default:
			RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("ошибка при обработке викторины: %v", err))
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, result)
}

// RegenerateScene перегенерирует изображение сцены
func (h *Handler) RegenerateScene(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "неверный формат ID")
		return
	}
	sceneNumber, err := strconv.Atoi(vars["number"])
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "неверный формат номера сцены")
		return
	}

	userID, ok := userIDFromRequest(w, r, "RegenerateScene")
	if !ok {
		return
	}

	var req service.RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("неверный формат запроса: %v", err))
		return
	}

	imageURL, err := h.journeyService.RegenerateScene(r.Context(), userID, id, sceneNumber, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSceneNumber):
			RespondWithError(w, http.StatusBadRequest, "номер сцены вне допустимого диапазона")
		case errors.Is(err, model.ErrNotFound):
			RespondWithError(w, http.StatusNotFound, "путешествие или сцена не найдены")
		case errors.Is(err, bria.ErrImageGenerationFailed):
			RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("не удалось сгенерировать изображение: %v", err))
		default:
			RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("ошибка при перегенерации сцены: %v", err))
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"image_url": imageURL})
}

// ListVariations возвращает журнал перегенераций путешествия
func (h *Handler) ListVariations(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "неверный формат ID")
		return
	}

	userID, ok := userIDFromRequest(w, r, "ListVariations")
	if !ok {
		return
	}

	variations, err := h.journeyService.ListVariations(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			RespondWithError(w, http.StatusNotFound, "путешествие не найдено")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("ошибка при получении вариаций: %v", err))
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{"variations": variations})
}

// LoadDemoJourney загружает демо-путешествие по слагу
func (h *Handler) LoadDemoJourney(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	userID, ok := userIDFromRequest(w, r, "LoadDemoJourney")
	if !ok {
		return
	}

	topic, err := h.journeyService.LoadDemoJourney(r.Context(), userID, slug)
	if err != nil {
		if errors.Is(err, service.ErrDemoNotFound) {
			RespondWithError(w, http.StatusNotFound, "демо-путешествие не найдено")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("ошибка при загрузке демо-путешествия: %v", err))
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{"journey": topic})
}

// GetCertificate возвращает данные сертификата завершенного путешествия
func (h *Handler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "неверный формат ID")
		return
	}

	userID, ok := userIDFromRequest(w, r, "GetCertificate")
	if !ok {
		return
	}

	topic, err := h.journeyService.Certificate(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			RespondWithError(w, http.StatusNotFound, "путешествие не найдено")
		case errors.Is(err, service.ErrJourneyNotCompleted):
			RespondWithError(w, http.StatusNotFound, "путешествие еще не завершено")
		default:
			RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("ошибка при получении сертификата: %v", err))
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"topic":        topic.Topic,
		"subject_type": topic.SubjectType,
		"total_score":  topic.TotalScore,
		"quiz_scores":  topic.QuizScores,
		"completed_at": topic.UpdatedAt,
	})
}

// ChatRequest - тело запроса чата с совой-наставником
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

// Chat отвечает на вопрос ученика
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("неверный формат запроса: %v", err))
		return
	}

	answer, err := h.journeyService.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			RespondWithError(w, http.StatusBadRequest, "сообщение не может быть пустым")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("ошибка чата: %v", err))
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"response": answer})
}

// userIDFromRequest извлекает userID из контекста запроса
func userIDFromRequest(w http.ResponseWriter, r *http.Request, handlerName string) (uuid.UUID, bool) {
	userIDStr, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Str("handler", handlerName).Msg("Не удалось извлечь userID из контекста")
		RespondWithError(w, http.StatusUnauthorized, "ошибка аутентификации: не удалось получить ID пользователя")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		log.Error().Err(err).Str("userIDStr", userIDStr).Str("handler", handlerName).Msg("Не удалось преобразовать userID из строки в UUID")
		RespondWithError(w, http.StatusUnauthorized, "ошибка аутентификации: неверный формат ID пользователя")
		return uuid.Nil, false
	}
	return userID, true
}

// RespondWithError отправляет ошибку в формате JSON
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// RespondWithJSON отправляет ответ в формате JSON
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
