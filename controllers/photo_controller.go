package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"talkboard_server/services"
)

// GeneratePresignedURL generates a presigned URL for avatar photo uploads
func GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}

	if payload.FileName == "" || payload.FileType == "" {
		http.Error(w, `{"error": "Missing required fields"}`, http.StatusBadRequest)
		return
	}

	url, key, err := services.GenerateUploadURL(payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("❌ Error generating pre-signed upload URL: %v", err)
		http.Error(w, `{"error": "Failed to generate pre-signed URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url, "key": key})
}

// GetPresignedReadURL generates a presigned URL for reading a stored photo
func GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}

	url, err := services.GenerateReadURL(payload.Key)
	if err != nil {
		http.Error(w, `{"error": "Failed to generate read pre-signed URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
