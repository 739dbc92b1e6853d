package menu

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"campuskitchen/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const menuUploadDir = "static/menupic"

// UploadMenuImage accepts a multipart image, stores the original and a
// 300px-wide thumbnail, and returns the public path for use in the item's
// image field.
func UploadMenuImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		http.Error(w, "Failed to decode image", http.StatusBadRequest)
		return
	}

	uniqueID := utils.GenerateID(16)
	fileName := uniqueID + ".jpg"
	originalPath := filepath.Join(menuUploadDir, fileName)
	thumbDir := filepath.Join(menuUploadDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		http.Error(w, "Failed to create upload directory", http.StatusInternalServerError)
		return
	}

	if err := imaging.Save(img, originalPath); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save image: %v", err), http.StatusInternalServerError)
		return
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save thumbnail: %v", err), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"image": "/static/menupic/" + fileName,
		"thumb": "/static/menupic/thumb/" + fileName,
	})
}
