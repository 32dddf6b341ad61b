package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/table"
)

// RecordService is the CRUD and search surface shared by the station,
// officer, criminal and FIR services.
type RecordService[T, C, U any] interface {
	List(ctx context.Context) ([]T, error)
	Search(ctx context.Context, q table.Query) (*table.Result[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req *C) (*T, error)
	Update(ctx context.Context, id string, req *U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// RecordHandler serves one record table. T is the record, C and U are its
// create and update requests.
type RecordHandler[T, C, U any] struct {
	svc     RecordService[T, C, U]
	filters []string
}

// NewRecordHandler builds a handler whose /search endpoint reads the named
// query parameters as filters.
func NewRecordHandler[T, C, U any](svc RecordService[T, C, U], filters ...string) *RecordHandler[T, C, U] {
	return &RecordHandler[T, C, U]{svc: svc, filters: filters}
}

// Register mounts the table on r. Write routes additionally pass through
// guard; it is attached per route because group middleware would also
// cover the read routes sharing the prefix.
func (h *RecordHandler[T, C, U]) Register(r fiber.Router, guard fiber.Handler) {
	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/:id", h.Get)
	r.Post("/", guard, h.Create)
	r.Patch("/:id", guard, h.Update)
	r.Delete("/:id", guard, h.Delete)
}

func (h *RecordHandler[T, C, U]) List(c *fiber.Ctx) error {
	items, err := h.svc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *RecordHandler[T, C, U]) Search(c *fiber.Ctx) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return fail(c, err)
	}
	res, err := h.svc.Search(c.UserContext(), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

func (h *RecordHandler[T, C, U]) parseQuery(c *fiber.Ctx) (table.Query, error) {
	q := table.Query{
		Search:  c.Query("q"),
		Page:    c.QueryInt("page", 1),
		Sort:    c.Query("sort"),
		Filters: make(map[string]string, len(h.filters)),
	}
	switch strings.ToLower(c.Query("order", "asc")) {
	case "asc":
	case "desc":
		q.Desc = true
	default:
		return q, &services.ValidationError{Field: "order", Message: "must be asc or desc"}
	}
	for _, f := range h.filters {
		if v := c.Query(f); v != "" {
			q.Filters[f] = v
		}
	}
	return q, nil
}

func (h *RecordHandler[T, C, U]) Get(c *fiber.Ctx) error {
	item, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

func (h *RecordHandler[T, C, U]) Create(c *fiber.Ctx) error {
	req := new(C)
	if err := c.BodyParser(req); err != nil {
		return badBody(c)
	}
	item, err := h.svc.Create(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *RecordHandler[T, C, U]) Update(c *fiber.Ctx) error {
	req := new(U)
	if err := c.BodyParser(req); err != nil {
		return badBody(c)
	}
	item, err := h.svc.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

func (h *RecordHandler[T, C, U]) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
