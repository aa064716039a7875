package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/database"
	"github.com/brandforgehq/brandforge/internal/pkg/entitlements"
	"github.com/brandforgehq/brandforge/internal/pkg/generation"
	"github.com/brandforgehq/brandforge/internal/pkg/selfiestore"
	"github.com/brandforgehq/brandforge/internal/pkg/upload"
	"github.com/brandforgehq/brandforge/internal/pkg/usage"
	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// HandleUploadSelfie accepts one multipart selfie, validates it, stores the
// binary in object storage and records the metadata row.
func HandleUploadSelfie(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing file field"})
	}

	plan := entitlements.NormalizePlan(userCtx.Plan)
	if fileHeader.Size > entitlements.MaxSelfieUploadBytes(plan) {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "file_too_large", "message": "The file exceeds your plan's upload limit"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to read upload"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to read upload"})
	}

	info, err := upload.InspectSelfie(fileHeader.Filename, data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	store, err := selfiestore.GetClient()
	if err != nil {
		fiberlog.Error(fmt.Sprintf("selfie storage unavailable: %v", err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage_unavailable", "message": "Selfie storage is not available"})
	}

	selfieUUID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectKey := store.ObjectKey(userCtx.UserID, selfieUUID, ext)

	if err := store.Upload(c.Context(), objectKey, data, info.MimeType); err != nil {
		fiberlog.Error(fmt.Sprintf("upload selfie for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to store selfie"})
	}

	selfie := &models.SelfieUpload{
		UUID:        selfieUUID,
		UserID:      userCtx.UserID,
		ObjectKey:   objectKey,
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		FileType:    info.MimeType,
		Width:       info.Width,
		Height:      info.Height,
		CameraModel: info.CameraModel,
		TakenAt:     info.TakenAt,
	}
	if err := repository.GetGlobalFactory().GetSelfieRepository().Create(selfie); err != nil {
		_ = store.Delete(c.Context(), objectKey)
		fiberlog.Error(fmt.Sprintf("save selfie row for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to store selfie"})
	}

	return c.Status(fiber.StatusCreated).JSON(selfie)
}

// HandleListSelfies returns the caller's uploaded selfies.
func HandleListSelfies(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	selfies, err := repository.GetGlobalFactory().GetSelfieRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("list selfies for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load selfies"})
	}

	return c.JSON(fiber.Map{
		"selfies":               selfies,
		"count":                 len(selfies),
		"required_for_training": entitlements.MinSelfiesForTraining,
	})
}

// HandleCreateUserModel starts training a personal model. A user gets exactly
// one model and the trigger word is globally unique; concurrent duplicates
// are stopped by the unique indexes and surface as a conflict.
func HandleCreateUserModel(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	plan := entitlements.NormalizePlan(userCtx.Plan)
	if !entitlements.CanTrainModel(plan) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "plan_required", "message": "Personal model training requires a paid plan"})
	}

	var req struct {
		TriggerWord string `json:"trigger_word"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	factory := repository.GetGlobalFactory()

	count, err := factory.GetSelfieRepository().CountByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to count selfies"})
	}
	if count < entitlements.MinSelfiesForTraining {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": fmt.Sprintf("At least %d selfies are required for training", entitlements.MinSelfiesForTraining)})
	}

	model := &models.UserModel{
		UserID:      userCtx.UserID,
		TriggerWord: strings.TrimSpace(req.TriggerWord),
		Status:      models.GENERATION_PENDING,
	}
	if err := model.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid trigger word"})
	}

	if err := factory.GetUserModelRepository().Create(model); err != nil {
		if isDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "A model already exists for this user or trigger word"})
		}
		fiberlog.Error(fmt.Sprintf("create model for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create model"})
	}

	go runModelTraining(model.ID, userCtx.UserID, model.TriggerWord)

	return c.Status(fiber.StatusCreated).JSON(model)
}

// runModelTraining hands the user's selfies to the provider and tracks the
// model through its training states. Runs detached from the request.
func runModelTraining(modelID, userID uint, triggerWord string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	factory := repository.GetGlobalFactory()
	modelRepo := factory.GetUserModelRepository()

	model, err := modelRepo.GetByUserID(userID)
	if err != nil || model.ID != modelID {
		fiberlog.Error(fmt.Sprintf("training %d: load model: %v", modelID, err))
		return
	}

	model.Status = models.MODEL_TRAINING
	_ = modelRepo.Update(model)

	selfies, err := factory.GetSelfieRepository().GetByUserID(userID)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("training %d: load selfies: %v", modelID, err))
		model.Status = models.GENERATION_FAILED
		_ = modelRepo.Update(model)
		return
	}

	urls := make([]string, 0, len(selfies))
	if store, err := selfiestore.GetClient(); err == nil {
		for _, s := range selfies {
			urls = append(urls, store.PublicURL(s.ObjectKey))
		}
	}

	providerModelID, err := generation.GetProvider().TrainModel(ctx, triggerWord, urls)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("training %d: provider: %v", modelID, err))
		model.Status = models.GENERATION_FAILED
		_ = modelRepo.Update(model)
		return
	}

	now := time.Now()
	model.ProviderModelID = providerModelID
	model.Status = models.GENERATION_COMPLETED
	model.TrainedAt = &now
	if err := modelRepo.Update(model); err != nil {
		fiberlog.Error(fmt.Sprintf("training %d: save result: %v", modelID, err))
	}

	// Record the training itself in the usage log; training is not billed
	// against the monthly image allowance.
	usageSvc := usage.NewService(database.GetDB(), factory.GetUsageRepository())
	if err := usageSvc.RecordGeneration(userID, entitlements.PlanFree, models.USAGE_ACTION_MODEL_TRAINING, nil, 0, nil); err != nil {
		fiberlog.Error(fmt.Sprintf("training %d: record usage: %v", modelID, err))
	}
}

// HandleGetMyModel returns the caller's personal model.
func HandleGetMyModel(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	model, err := repository.GetGlobalFactory().GetUserModelRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "No model found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load model"})
	}

	return c.JSON(model)
}

// HandleGenerateWithModel produces a batch of candidate images from the
// caller's trained model and books the generation against the allowance.
func HandleGenerateWithModel(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Prompt is required"})
	}

	factory := repository.GetGlobalFactory()

	model, err := factory.GetUserModelRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "No model found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load model"})
	}
	if !model.IsReady() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "The model has not finished training"})
	}

	plan := entitlements.NormalizePlan(userCtx.Plan)
	usageSvc := usage.NewService(database.GetDB(), factory.GetUsageRepository())
	if err := usageSvc.CheckAllowance(userCtx.UserID, plan); err != nil {
		if errors.Is(err, usage.ErrLimitReached) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "limit_reached", "message": "Monthly generation limit reached"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to check usage"})
	}

	urls, err := generation.GetProvider().GenerateWithModel(c.Context(), model.ProviderModelID, model.TriggerWord, req.Prompt)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("generate with model %d: %v", model.ID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Image generation failed"})
	}

	image := &models.GeneratedImage{
		UUID:        uuid.New().String(),
		UserID:      userCtx.UserID,
		UserModelID: model.ID,
		Prompt:      req.Prompt,
	}
	if err := image.SetCandidateURLs(urls); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to store candidates"})
	}
	if err := factory.GetGeneratedImageRepository().Create(image); err != nil {
		fiberlog.Error(fmt.Sprintf("save generated image for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to store generation"})
	}

	if err := usageSvc.RecordGeneration(userCtx.UserID, plan, models.USAGE_ACTION_MODEL_IMAGE, &image.ID, entitlements.GenerationCost(plan), nil); err != nil {
		fiberlog.Error(fmt.Sprintf("record usage for user %d: %v", userCtx.UserID, err))
	}

	return c.Status(fiber.StatusCreated).JSON(image)
}

// HandleListGeneratedImages returns the caller's model-generated batches.
func HandleListGeneratedImages(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	offset, limit := parsePagination(c)
	images, err := repository.GetGlobalFactory().GetGeneratedImageRepository().GetByUserID(userCtx.UserID, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load generated images"})
	}

	return c.JSON(fiber.Map{"images": images, "offset": offset, "limit": limit})
}

// HandleSelectGeneratedImage picks one candidate URL out of a batch.
func HandleSelectGeneratedImage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	imageUUID := c.Params("uuid")
	repo := repository.GetGlobalFactory().GetGeneratedImageRepository()

	image, err := repo.GetByUUID(imageUUID)
	if err != nil || image.UserID != userCtx.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Generated image not found"})
	}
	if !image.HasCandidate(req.URL) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "The URL is not one of the generated candidates"})
	}

	image.SelectedURL = req.URL
	image.Saved = true
	if err := repo.Update(image); err != nil {
		fiberlog.Error(fmt.Sprintf("select generated image %s: %v", imageUUID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save selection"})
	}

	return c.JSON(image)
}

// isDuplicateKeyError recognizes unique index violations from the driver.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
