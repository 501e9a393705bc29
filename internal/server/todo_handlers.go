package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"todoapi/internal/model"
	"todoapi/internal/service"
)

type createListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateListRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type createItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    *int    `json:"priority"`
	DueDate     *string `json:"due_date"`
}

type updateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Priority    *int    `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// listSummary is a list row on the overview endpoint: counts instead of
// the items themselves.
type listSummary struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	ItemsCount     int64     `json:"items_count"`
	CompletedCount int64     `json:"completed_count"`
}

// listDetail always serializes todo_items, as an empty array when the
// list has none.
type listDetail struct {
	model.TodoList
	Items []model.TodoItem `json:"todo_items"`
}

func (s *Server) handleListTodoLists(c echo.Context) error {
	user := currentUser(c)
	lists, err := s.todos.Lists(c.Request().Context(), user.ID)
	if err != nil {
		return serviceError(c, err, "")
	}

	out := make([]listSummary, 0, len(lists))
	for _, list := range lists {
		out = append(out, listSummary{
			ID:             list.ID,
			UserID:         list.UserID,
			Title:          list.Title,
			Slug:           list.Slug,
			Description:    list.Description,
			CreatedAt:      list.CreatedAt,
			UpdatedAt:      list.UpdatedAt,
			ItemsCount:     list.ItemsCount,
			CompletedCount: list.CompletedCount,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"todoLists": out})
}

func (s *Server) handleCreateTodoList(c echo.Context) error {
	user := currentUser(c)
	var req createListRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	list, err := s.todos.CreateList(c.Request().Context(), user.ID, service.ListInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return serviceError(c, err, "")
	}
	return c.JSON(http.StatusCreated, echo.Map{"todoList": list})
}

func (s *Server) handleGetTodoList(c echo.Context) error {
	user := currentUser(c)
	list, err := s.todos.GetList(c.Request().Context(), user.ID, c.Param("slug"))
	if err != nil {
		return serviceError(c, err, "Todo list not found")
	}

	items := list.Items
	if items == nil {
		items = []model.TodoItem{}
	}
	return c.JSON(http.StatusOK, echo.Map{"todoList": listDetail{TodoList: *list, Items: items}})
}

func (s *Server) handleUpdateTodoList(c echo.Context) error {
	user := currentUser(c)
	var req updateListRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	list, err := s.todos.UpdateList(c.Request().Context(), user.ID, c.Param("slug"), service.ListUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return serviceError(c, err, "Todo list not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"todoList": list})
}

func (s *Server) handleDeleteTodoList(c echo.Context) error {
	user := currentUser(c)
	if err := s.todos.DeleteList(c.Request().Context(), user.ID, c.Param("slug")); err != nil {
		return serviceError(c, err, "Todo list not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Todo list deleted successfully"})
}

func (s *Server) handleCreateTodoItem(c echo.Context) error {
	user := currentUser(c)
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	input := service.ItemInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid due date"})
		}
		input.DueDate = due
	}

	item, err := s.todos.CreateItem(c.Request().Context(), user.ID, c.Param("slug"), input)
	if err != nil {
		return serviceError(c, err, "Todo list not found")
	}
	return c.JSON(http.StatusCreated, echo.Map{"todoItem": item})
}

func (s *Server) handleUpdateTodoItem(c echo.Context) error {
	user := currentUser(c)
	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	update := service.ItemUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
	}
	if req.DueDate != nil {
		update.SetDueDate = true
		if *req.DueDate != "" {
			due, err := parseDueDate(*req.DueDate)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid due date"})
			}
			update.DueDate = due
		}
	}

	item, err := s.todos.UpdateItem(c.Request().Context(), user.ID, c.Param("slug"), c.Param("itemId"), update)
	if err != nil {
		return serviceError(c, err, "Todo item not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"todoItem": item})
}

func (s *Server) handleDeleteTodoItem(c echo.Context) error {
	user := currentUser(c)
	err := s.todos.DeleteItem(c.Request().Context(), user.ID, c.Param("slug"), c.Param("itemId"))
	if err != nil {
		return serviceError(c, err, "Todo item not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Todo item deleted successfully"})
}

// parseDueDate accepts RFC 3339 timestamps and bare dates.
func parseDueDate(raw string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
