package adminControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/helper"
	"github.com/adithyakrishnan/bazario-api/models"
)

type AddProductRequest struct {
	Name        string   `json:"name" binding:"required,min=2"`
	Description string   `json:"description" binding:"omitempty,min=10"`
	Price       *float64 `json:"price" binding:"required,min=0"`
	Stock       *int     `json:"stock" binding:"required,min=0"`
	Image       string   `json:"image"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2"`
	Description *string  `json:"description" binding:"omitempty,min=10"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Stock       *int     `json:"stock" binding:"omitempty,min=0"`
	Image       *string  `json:"image"`
}

type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required,min=0"`
}

// POST /admin/products
func AddProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddProductRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		product := models.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       *req.Price,
			Stock:       *req.Stock,
			Image:       req.Image,
		}
		if err := db.Create(&product).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Product created successfully",
			"product": product,
		})
	}
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProductRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var product models.Product
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&product, "id = ?", c.Param("id")).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Product")
				}
				return err
			}

			updates := make(map[string]interface{})
			if req.Name != nil {
				updates["name"] = *req.Name
			}
			if req.Description != nil {
				updates["description"] = *req.Description
			}
			if req.Price != nil {
				updates["price"] = *req.Price
			}
			if req.Stock != nil {
				updates["stock"] = *req.Stock
			}
			if req.Image != nil {
				updates["image"] = *req.Image
			}
			if len(updates) == 0 {
				return nil
			}
			return tx.Model(&product).Updates(updates).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product updated successfully",
			"product": product,
		})
	}
}

// DELETE /admin/products/:id
func RemoveProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.Product{})
		if result.Error != nil {
			helper.WriteError(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
	}
}

// PUT /admin/products/:id/stock
func UpdateStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStockRequest
		if !helper.BindJSON(c, &req) {
			return
		}

		var product models.Product
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&product, "id = ?", c.Param("id")).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return helper.NotFound("Product")
				}
				return err
			}
			product.Stock = *req.Stock
			return tx.Model(&product).Update("stock", *req.Stock).Error
		})
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product stock updated successfully",
			"product": gin.H{
				"id":    product.ID,
				"name":  product.Name,
				"stock": product.Stock,
			},
		})
	}
}

// GET /admin/products
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := helper.ParsePageParams(c, 20, 50)

		query := db.Model(&models.Product{})
		if v := c.Query("minPrice"); v != "" {
			if minPrice, err := strconv.ParseFloat(v, 64); err == nil {
				query = query.Where("price >= ?", minPrice)
			}
		}
		if v := c.Query("maxPrice"); v != "" {
			if maxPrice, err := strconv.ParseFloat(v, 64); err == nil {
				query = query.Where("price <= ?", maxPrice)
			}
		}
		if v := c.Query("minStock"); v != "" {
			if minStock, err := strconv.Atoi(v); err == nil {
				query = query.Where("stock >= ?", minStock)
			}
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		var products []models.Product
		if err := query.Order("id DESC").
			Limit(params.Limit).
			Offset(params.Offset).
			Find(&products).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Products retrieved successfully",
			"data":       products,
			"pagination": helper.Paginate(count, params),
		})
	}
}

// GET /admin/products/:id
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
				return
			}
			helper.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}

// GET /admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("id").Find(&products).Error; err != nil {
			helper.WriteError(c, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			helper.WriteError(c, err)
			return
		}

		headers := []string{"ID", "Name", "Description", "Price", "Stock", "Image", "CreatedAt", "UpdatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.Image)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")

		if err := file.Write(c.Writer); err != nil {
			helper.WriteError(c, err)
			return
		}
	}
}
