package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"talkboard_server/models"
	"talkboard_server/services"

	"github.com/gorilla/mux"
)

// BoardController struct
type BoardController struct {
	BoardService *services.BoardService
	AuthService  *services.AuthService
}

// NewBoardController initializes the board controller
func NewBoardController(boardService *services.BoardService, authService *services.AuthService) *BoardController {
	return &BoardController{BoardService: boardService, AuthService: authService}
}

// HandleGetBoard - Fetch the rendered board for the selected ward
func (c *BoardController) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	_, err := c.AuthService.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	ward := r.URL.Query().Get("ward")
	if ward == "" {
		ward = models.Ward1st
	}

	board, err := c.BoardService.GetBoard(r.Context(), ward)
	if err != nil {
		log.Printf("❌ Error building board view: %v", err)
		http.Error(w, `{"error": "Failed to fetch board"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(board)
}

// HandleGetThread - Fetch one thread root and its replies
func (c *BoardController) HandleGetThread(w http.ResponseWriter, r *http.Request) {
	_, err := c.AuthService.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	id := mux.Vars(r)["id"]
	root, replies, err := c.BoardService.GetThread(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			http.Error(w, `{"error": "Thread not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Error fetching thread %s: %v", id, err)
		http.Error(w, `{"error": "Failed to fetch thread"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"root":    root,
		"replies": replies,
	})
}

// HandleCreatePost - Create a new top-level post
func (c *BoardController) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	caller, err := c.AuthService.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	var request struct {
		Text  string `json:"text"`
		Title string `json:"title"`
		Ward  string `json:"ward"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if !models.IsValidWard(request.Ward) {
		http.Error(w, `{"error": "Unknown ward"}`, http.StatusBadRequest)
		return
	}

	msg, err := c.BoardService.CreatePost(r.Context(), request.Text, request.Title, request.Ward, caller)
	if err != nil {
		if errors.Is(err, services.ErrEmptyText) {
			http.Error(w, `{"error": "Message text is required"}`, http.StatusBadRequest)
			return
		}
		log.Printf("❌ Failed to create post: %v", err)
		http.Error(w, `{"error": "Failed to create post"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// HandleCreateReply - Create a reply under an existing thread root
func (c *BoardController) HandleCreateReply(w http.ResponseWriter, r *http.Request) {
	caller, err := c.AuthService.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	var request struct {
		ParentID   string `json:"parentId"`
		Text       string `json:"text"`
		AllowBlank bool   `json:"allowBlank"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.ParentID == "" {
		http.Error(w, `{"error": "parentId is required"}`, http.StatusBadRequest)
		return
	}

	msg, err := c.BoardService.CreateReply(r.Context(), request.ParentID, request.Text, caller, request.AllowBlank)
	if err != nil {
		if errors.Is(err, services.ErrEmptyText) {
			http.Error(w, `{"error": "Reply text is required"}`, http.StatusBadRequest)
			return
		}
		log.Printf("❌ Failed to create reply: %v", err)
		http.Error(w, `{"error": "Failed to create reply"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// HandleLikeMessage - Bump a message's like count by one over the count the
// caller last saw
func (c *BoardController) HandleLikeMessage(w http.ResponseWriter, r *http.Request) {
	_, err := c.AuthService.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	var request struct {
		ID        string `json:"id"`
		LikeCount int    `json:"likeCount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.ID == "" {
		http.Error(w, `{"error": "id is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.BoardService.LikeMessage(r.Context(), request.ID, request.LikeCount); err != nil {
		log.Printf("❌ Failed to like message %s: %v", request.ID, err)
		http.Error(w, `{"error": "Failed to like message"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleDeleteMessage - Soft-delete a message. The confirm flag is the
// client's yes/no gate; without it no patch is issued.
func (c *BoardController) HandleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	caller, err := c.AuthService.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	var request struct {
		ID      string `json:"id"`
		Confirm bool   `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.ID == "" {
		http.Error(w, `{"error": "id is required"}`, http.StatusBadRequest)
		return
	}

	if !request.Confirm {
		http.Error(w, `{"error": "Delete must be confirmed"}`, http.StatusBadRequest)
		return
	}

	if err := c.BoardService.DeleteMessage(r.Context(), request.ID, caller); err != nil {
		switch {
		case errors.Is(err, services.ErrMessageNotFound):
			http.Error(w, `{"error": "Message not found"}`, http.StatusNotFound)
		case errors.Is(err, services.ErrNotAuthor):
			http.Error(w, `{"error": "Only the author can delete a message"}`, http.StatusForbidden)
		default:
			log.Printf("❌ Failed to delete message %s: %v", request.ID, err)
			http.Error(w, `{"error": "Failed to delete message"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}
