package cars

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smlmotors/showroom/internal/server/cars"
	"github.com/smlmotors/showroom/internal/server/handlers/api"
)

type CarsHandler struct {
	cars *cars.CarService
}

func New(cars *cars.CarService) *CarsHandler {
	return &CarsHandler{cars: cars}
}

// List returns the catalog, newest first, capped page size.
func (h *CarsHandler) List(ctx *gin.Context) {
	records, total, err := h.cars.List(ctx.Request.Context())
	if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
		return
	}

	api.OK(ctx, http.StatusOK, gin.H{
		"data":  records,
		"total": total,
	})
}

func (h *CarsHandler) Get(ctx *gin.Context) {
	car, err := h.cars.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, cars.ErrNotFound) {
			api.AbortWithError(ctx, http.StatusNotFound, api.CodeCarNotFound,
				errors.New("Car not found"))
			return
		}
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
		return
	}

	api.OK(ctx, http.StatusOK, gin.H{"data": car})
}

// Create makes a record from coerced body fields. Validation failures are
// rejected before any document store write.
func (h *CarsHandler) Create(ctx *gin.Context) {
	var payload map[string]any
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			fmt.Errorf("failed to bind json: %w", err))
		return
	}

	car, err := h.cars.Create(ctx.Request.Context(), payload)
	if err != nil {
		var missing *cars.MissingFieldsError
		if errors.As(err, &missing) {
			api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, missing)
			return
		}
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeCarPutFailed, err)
		return
	}

	api.OK(ctx, http.StatusOK, gin.H{
		"data":    car,
		"message": "Car created successfully",
	})
}

// Update applies a partial update: only supplied fields are modified.
func (h *CarsHandler) Update(ctx *gin.Context) {
	var payload map[string]any
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			fmt.Errorf("failed to bind json: %w", err))
		return
	}

	car, err := h.cars.Update(ctx.Request.Context(), ctx.Param("id"), payload)
	if err != nil {
		if errors.Is(err, cars.ErrNotFound) {
			api.AbortWithError(ctx, http.StatusNotFound, api.CodeCarNotFound,
				errors.New("Car not found"))
			return
		}
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeCarPutFailed, err)
		return
	}

	api.OK(ctx, http.StatusOK, gin.H{
		"data":    car,
		"message": "Car updated successfully",
	})
}

func (h *CarsHandler) Delete(ctx *gin.Context) {
	err := h.cars.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, cars.ErrNotFound) {
			api.AbortWithError(ctx, http.StatusNotFound, api.CodeCarNotFound,
				errors.New("Car not found"))
			return
		}
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
		return
	}

	api.OK(ctx, http.StatusOK, gin.H{"message": "Car deleted successfully"})
}
