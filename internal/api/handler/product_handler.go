package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stockwise/inventory-system/internal/core/ports"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func bindProductRequest(c echo.Context) (*productRequest, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Price.Sign() <= 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "price must be greater than 0")
	}
	return &req, nil
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	req, err := bindProductRequest(c)
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(result))
}

// Get handles GET /products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	result, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(result))
}

// List handles GET /products.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  productResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	results, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(results))
}

// ListByCategory handles GET /products/category/:id.
//
// @Summary      List products in a category
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Category id"
// @Success      200  {array}  productResponse
// @Router       /products/category/{id} [get]
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	results, err := h.service.GetByCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(results))
}

// Search handles GET /products/search?keyword=. An empty keyword returns
// every product.
//
// @Summary      Search products by name or description
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        keyword  query    string  false  "Case-insensitive substring"
// @Success      200      {array}  productResponse
// @Router       /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	results, err := h.service.Search(c.Request().Context(), c.QueryParam("keyword"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(results))
}

// ListLowStock handles GET /products/low-stock.
//
// @Summary      List products at or below their reorder level
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  productResponse
// @Router       /products/low-stock [get]
func (h *ProductHandler) ListLowStock(c echo.Context) error {
	results, err := h.service.GetLowStock(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(results))
}

// Update handles PUT /products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	req, err := bindProductRequest(c)
	if err != nil {
		return err
	}

	result, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(result))
}

// UpdateStock handles PATCH /products/:id/stock?quantity=. The quantity query
// parameter must be a non-negative integer; the product status is recomputed
// from it.
//
// @Summary      Update product stock
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Product id"
// @Param        quantity  query     int     true  "New quantity (>= 0)"
// @Success      200       {object}  productResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(c echo.Context) error {
	quantity, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be an integer")
	}
	if quantity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must not be negative")
	}

	result, err := h.service.UpdateStock(c.Request().Context(), c.Param("id"), quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(result))
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
