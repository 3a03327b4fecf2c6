package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/api/metrics"
	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

const (
	greetingReply = "Hello! Welcome to the Retail Assistant. How may I help you today?"
	fallbackReply = "I'm sorry, I didn't understand that. Please try asking about stock, items, suppliers, or item by ID."
)

var (
	greetingPattern = regexp.MustCompile(`^(hi|hello|hey|good morning|good evening)`)
	digitsPattern   = regexp.MustCompile(`(\d+)`)
)

// chatRule pairs a predicate on the lower-cased message with the query that
// answers it.
type chatRule struct {
	intent string
	match  func(msg string) bool
	answer func(ctx context.Context, msg string) (string, error)
}

// ChatbotService answers inventory questions by keyword. Rules are tried in
// order and the first match wins.
type ChatbotService struct {
	repo       ports.InventoryRepository
	thresholds StockThresholds
	rules      []chatRule
	log        zerolog.Logger
}

func NewChatbotService(repo ports.InventoryRepository, thresholds StockThresholds, log zerolog.Logger) *ChatbotService {
	s := &ChatbotService{
		repo:       repo,
		thresholds: thresholds,
		log:        log,
	}
	s.rules = []chatRule{
		{intent: "greeting", match: greetingPattern.MatchString, answer: s.greeting},
		{intent: "low_stock", match: containsAny("low stock"), answer: s.lowStock},
		{intent: "high_stock", match: containsAny("high stock"), answer: s.highStock},
		{intent: "items", match: containsAny("items do we have", "all items"), answer: s.allItems},
		{intent: "suppliers", match: containsAny("suppliers"), answer: s.suppliers},
		{intent: "categories", match: containsAny("categories", "category"), answer: s.categories},
		{intent: "item_by_id", match: mentionsID, answer: s.itemByID},
	}
	return s
}

// Reply returns the answer for message, or the fallback text when no rule matches.
func (s *ChatbotService) Reply(ctx context.Context, message string) (string, error) {
	lower := strings.ToLower(message)
	for _, rule := range s.rules {
		if !rule.match(lower) {
			continue
		}
		reply, err := rule.answer(ctx, lower)
		if err != nil {
			return "", fmt.Errorf("chatbot %s: %w", rule.intent, err)
		}
		metrics.ChatbotQueriesTotal.WithLabelValues(rule.intent).Inc()
		return reply, nil
	}
	metrics.ChatbotQueriesTotal.WithLabelValues("fallback").Inc()
	return fallbackReply, nil
}

func containsAny(needles ...string) func(string) bool {
	return func(msg string) bool {
		for _, n := range needles {
			if strings.Contains(msg, n) {
				return true
			}
		}
		return false
	}
}

// mentionsID matches "item with id 4" and anything else containing "id" and a number.
func mentionsID(msg string) bool {
	return strings.Contains(msg, "id") && digitsPattern.MatchString(msg)
}

func (s *ChatbotService) greeting(context.Context, string) (string, error) {
	return greetingReply, nil
}

func (s *ChatbotService) lowStock(ctx context.Context, _ string) (string, error) {
	items, err := s.repo.ListBelow(ctx, s.thresholds.Low)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "No items are currently low in stock.", nil
	}
	return "Low stock items: " + joinWithQuantity(items), nil
}

func (s *ChatbotService) highStock(ctx context.Context, _ string) (string, error) {
	items, err := s.repo.ListAbove(ctx, s.thresholds.High)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "No items are currently high in stock.", nil
	}
	return "High stock items: " + joinWithQuantity(items), nil
}

func (s *ChatbotService) allItems(ctx context.Context, _ string) (string, error) {
	names, err := s.repo.Names(ctx)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "No items found in inventory.", nil
	}
	return "We have: " + strings.Join(names, ", "), nil
}

func (s *ChatbotService) suppliers(ctx context.Context, _ string) (string, error) {
	suppliers, err := s.repo.DistinctSuppliers(ctx)
	if err != nil {
		return "", err
	}
	if len(suppliers) == 0 {
		return "No suppliers found.", nil
	}
	return "Suppliers: " + strings.Join(suppliers, ", "), nil
}

func (s *ChatbotService) categories(ctx context.Context, _ string) (string, error) {
	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return "", err
	}
	if len(categories) == 0 {
		return "No categories found.", nil
	}
	return "Categories: " + strings.Join(categories, ", "), nil
}

func (s *ChatbotService) itemByID(ctx context.Context, msg string) (string, error) {
	digits := digitsPattern.FindString(msg)
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return fmt.Sprintf("No item found with ID %s.", digits), nil
	}

	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrItemNotFound) {
		return fmt.Sprintf("No item found with ID %d.", id), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Item ID %d: %s, Quantity: %d, Price: %s, Supplier: %s, Category: %s",
		id, item.Name, item.Quantity, item.Price.StringFixed(2), item.Supplier, item.Category), nil
}

func joinWithQuantity(items []domain.InventoryItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%d)", it.Name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}
