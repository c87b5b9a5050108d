package expense

import (
	"fmt"
	"log"
	"time"

	"protezlab-backend/internal/audit"
	"protezlab-backend/internal/auth"
	"protezlab-backend/internal/database"
	"protezlab-backend/internal/middlewares"
	"protezlab-backend/internal/models"
	"protezlab-backend/internal/store"
	"protezlab-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type CreateExpenseRequest struct {
	Date          string  `json:"date" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Supplier      string  `json:"supplier"`
	InvoiceNumber string  `json:"invoice_number"`
	Notes         string  `json:"notes"`
}

type UpdateExpenseRequest struct {
	Date          *string  `json:"date"`
	Category      *string  `json:"category"`
	Description   *string  `json:"description"`
	Amount        *float64 `json:"amount"`
	Supplier      *string  `json:"supplier"`
	InvoiceNumber *string  `json:"invoice_number"`
	Notes         *string  `json:"notes"`
}

type ExpenseResponse struct {
	ID            uint    `json:"id"`
	Date          string  `json:"date"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Supplier      string  `json:"supplier"`
	InvoiceNumber string  `json:"invoice_number"`
	Notes         string  `json:"notes"`
}

// GET /api/expenses/categories
func CategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(models.ExpenseCategories)
	}
}

// POST /api/expenses  (admin, accountant)
func CreateExpenseHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := middlewares.BindAndValidate(c, &body); err != nil {
			return err
		}

		if !models.IsValidExpenseCategory(body.Category) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz gider kategorisi")
		}
		date, err := time.Parse(dateLayout, body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz (YYYY-AA-GG)")
		}

		exp := models.Expense{
			Date:          date,
			Category:      body.Category,
			Description:   body.Description,
			Amount:        body.Amount,
			Supplier:      body.Supplier,
			InvoiceNumber: body.InvoiceNumber,
			Notes:         body.Notes,
		}
		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider kaydedilemedi")
		}

		st.ApplyExpense(exp)

		userID, userName := auth.CurrentUser(c)
		if err := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s kategorisinde %.2f TL gider", exp.Category, exp.Amount),
			After:       exp,
		}); err != nil {
			log.Println(err)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(exp))
	}
}

// GET /api/expenses?year=2025&month=6&category=Kira  (admin, accountant)
func ListExpensesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn := st.Snapshot()

		year := c.QueryInt("year")
		month := c.QueryInt("month")
		category := c.Query("category")
		if month != 0 && (month < 1 || month > 12) {
			return fiber.NewError(fiber.StatusBadRequest, "month 1-12 arasında olmalı")
		}

		resp := make([]ExpenseResponse, 0, len(sn.Expenses))
		for _, e := range sn.Expenses {
			if year != 0 && e.Date.Year() != year {
				continue
			}
			if month != 0 && int(e.Date.Month()) != month {
				continue
			}
			if category != "" && e.Category != category {
				continue
			}
			resp = append(resp, toResponse(e))
		}

		return c.JSON(resp)
	}
}

// PUT /api/expenses/:id  (admin, accountant)
func UpdateExpenseHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gider bulunamadı")
		}
		before := exp

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Date != nil {
			date, err := time.Parse(dateLayout, *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz (YYYY-AA-GG)")
			}
			exp.Date = date
		}
		if body.Category != nil {
			if !models.IsValidExpenseCategory(*body.Category) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz gider kategorisi")
			}
			exp.Category = *body.Category
		}
		if body.Description != nil {
			exp.Description = *body.Description
		}
		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Tutar pozitif olmalı")
			}
			exp.Amount = *body.Amount
		}
		if body.Supplier != nil {
			exp.Supplier = *body.Supplier
		}
		if body.InvoiceNumber != nil {
			exp.InvoiceNumber = *body.InvoiceNumber
		}
		if body.Notes != nil {
			exp.Notes = *body.Notes
		}

		if err := database.DB.Save(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider güncellenemedi")
		}

		st.ApplyExpense(exp)

		userID, userName := auth.CurrentUser(c)
		if err := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionUpdate,
			Description: "Gider güncellendi",
			Before:      before,
			After:       exp,
		}); err != nil {
			log.Println(err)
		}

		return c.JSON(toResponse(exp))
	}
}

// DELETE /api/expenses/:id  (admin)
func DeleteExpenseHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gider bulunamadı")
		}

		if err := database.DB.Delete(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider silinemedi")
		}

		st.RemoveExpense(exp.ID)

		userID, userName := auth.CurrentUser(c)
		if err := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("%s kategorisindeki %.2f TL gider silindi", exp.Category, exp.Amount),
			Before:      exp,
		}); err != nil {
			log.Println(err)
		}

		return c.JSON(fiber.Map{"message": "Gider silindi"})
	}
}

// GET /api/expenses/summary?year=2025&month=6  (admin, accountant)
//
// Ay içi giderlerin kategori bazında dökümü. Gideri olmayan kategoriler
// de sıfır tutarla listelenir.
func CategorySummaryHandler(st *store.Store) fiber.Handler {
	type categoryTotal struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
		Count    int     `json:"count"`
	}

	return func(c *fiber.Ctx) error {
		year := c.QueryInt("year")
		month := c.QueryInt("month")
		if year == 0 || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "year ve month (1-12) zorunlu")
		}

		sn := st.Snapshot()

		totals := make(map[string]*categoryTotal, len(models.ExpenseCategories))
		summary := make([]*categoryTotal, 0, len(models.ExpenseCategories))
		for _, cat := range models.ExpenseCategories {
			ct := &categoryTotal{Category: cat}
			totals[cat] = ct
			summary = append(summary, ct)
		}

		var grandTotal float64
		for _, e := range sn.Expenses {
			if e.Date.Year() != year || int(e.Date.Month()) != month {
				continue
			}
			ct, ok := totals[e.Category]
			if !ok {
				// Kategori listesi sonradan daralmışsa eski kayıtlar Diğer'e düşer.
				ct = totals["Diğer"]
			}
			ct.Total = utils.Round2(ct.Total + e.Amount)
			ct.Count++
			grandTotal += e.Amount
		}

		return c.JSON(fiber.Map{
			"year":       year,
			"month":      month,
			"categories": summary,
			"total":      utils.Round2(grandTotal),
		})
	}
}

func toResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Date:          e.Date.Format(dateLayout),
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		Supplier:      e.Supplier,
		InvoiceNumber: e.InvoiceNumber,
		Notes:         e.Notes,
	}
}
