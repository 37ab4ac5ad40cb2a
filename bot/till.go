package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"restaurant-till/restaurant"
	"restaurant-till/services"
)

// MenuStore persists menu edits made through the bot.
type MenuStore interface {
	AddMenuItem(ctx context.Context, name string, price int64) error
	DeleteMenuItem(ctx context.Context, name string) error
}

// PostgresMenuStore stores the menu through the services package.
type PostgresMenuStore struct{}

func (PostgresMenuStore) AddMenuItem(ctx context.Context, name string, price int64) error {
	_, err := services.AddMenuItem(ctx, name, price)
	return err
}

func (PostgresMenuStore) DeleteMenuItem(ctx context.Context, name string) error {
	return services.DeleteMenuItem(ctx, name)
}

// chatOrder is one chat's running order. Its Restaurant holds only the items
// the chat has ordered, priced as they were when first ordered, so a cancel
// always subtracts exactly what an order added.
type chatOrder struct {
	r     *restaurant.Restaurant
	count map[string]int
}

// Till turns chat commands into Restaurant calls. The Restaurant is not
// safe for concurrent use, so every call goes through mu.
type Till struct {
	mu      sync.Mutex
	r       *restaurant.Restaurant
	orders  map[int64]*chatOrder
	store   MenuStore
	adminID int64
	log     *zap.Logger
}

func NewTill(r *restaurant.Restaurant, store MenuStore, adminID int64, log *zap.Logger) *Till {
	if log == nil {
		log = zap.NewNop()
	}
	return &Till{
		r:       r,
		orders:  make(map[int64]*chatOrder),
		store:   store,
		adminID: adminID,
		log:     log,
	}
}

// Handle runs one command sent by userID in chatID and returns the reply text.
func (t *Till) Handle(ctx context.Context, chatID, userID int64, text string) string {
	cmd, args := splitCommand(text)

	t.mu.Lock()
	defer t.mu.Unlock()

	switch cmd {
	case "/start":
		return t.handleStart()
	case "/hours":
		return t.hoursLine()
	case "/menu":
		return t.handleMenu()
	case "/add":
		return t.handleAdd(ctx, userID, args)
	case "/remove":
		return t.handleRemove(ctx, userID, args)
	case "/order":
		return t.handleOrder(chatID, args)
	case "/cancel":
		return t.handleCancel(chatID, args)
	case "/total":
		var total int64
		if o := t.orders[chatID]; o != nil {
			total = o.r.OrderCost()
		}
		return fmt.Sprintf("Order total: %d", total)
	default:
		return "Unknown command. Try /menu or /start."
	}
}

func (t *Till) isAdmin(userID int64) bool {
	return t.adminID != 0 && userID == t.adminID
}

func (t *Till) handleStart() string {
	return fmt.Sprintf("Welcome to %s, %s.\n%s\n\n/menu - see the menu\n/order a, b - add items to your order\n/cancel a, b - remove items from your order\n/total - order total",
		t.r.Name(), t.r.Location(), t.hoursLine())
}

func (t *Till) hoursLine() string {
	state := "closed"
	if t.r.IsOpen() {
		state = "open"
	}
	return fmt.Sprintf("Hours: %s-%s. We are %s now.", t.r.OpeningTime(), t.r.ClosingTime(), state)
}

func (t *Till) handleMenu() string {
	menu := t.r.Menu()
	if len(menu) == 0 {
		return "The menu is empty."
	}
	var sb strings.Builder
	sb.WriteString("Menu:")
	for _, it := range menu {
		fmt.Fprintf(&sb, "\n%s - %d", it.Name, it.Price)
	}
	return sb.String()
}

func (t *Till) handleAdd(ctx context.Context, userID int64, args string) string {
	if !t.isAdmin(userID) {
		return "Only the admin can change the menu."
	}
	priceStr, name, _ := strings.Cut(args, " ")
	name = strings.TrimSpace(name)
	price, err := strconv.ParseInt(priceStr, 10, 64)
	if err != nil || name == "" {
		return "Usage: /add <price> <name>"
	}
	if err := services.ValidateMenuItem(name, price); err != nil {
		return "Invalid item: " + err.Error()
	}
	if t.store != nil {
		if err := t.store.AddMenuItem(ctx, name, price); err != nil {
			t.log.Error("save menu item", zap.String("item", name), zap.Error(err))
			return fmt.Sprintf("Could not save %q, try again later.", name)
		}
	}
	t.r.AddToMenu(name, price)
	t.log.Info("menu item added", zap.String("item", name), zap.Int64("price", price), zap.Int64("by", userID))
	return fmt.Sprintf("Added %s (%d) to the menu.", name, price)
}

func (t *Till) handleRemove(ctx context.Context, userID int64, args string) string {
	if !t.isAdmin(userID) {
		return "Only the admin can change the menu."
	}
	name := strings.TrimSpace(args)
	if name == "" {
		return "Usage: /remove <name>"
	}
	item, err := t.r.RemoveFromMenu(name)
	if errors.Is(err, restaurant.ErrItemNotFound) {
		return fmt.Sprintf("%q is not on the menu.", name)
	}
	if err != nil {
		t.log.Error("remove menu item", zap.String("item", name), zap.Error(err))
		return "Something went wrong."
	}
	if t.store != nil {
		if err := t.store.DeleteMenuItem(ctx, name); err != nil && !errors.Is(err, services.ErrMenuItemNotFound) {
			t.log.Error("delete stored menu item", zap.String("item", name), zap.Error(err))
			return fmt.Sprintf("Removed %s from the menu, but it could not be saved.", item.Name)
		}
	}
	t.log.Info("menu item removed", zap.String("item", name), zap.Int64("by", userID))
	return fmt.Sprintf("Removed %s (%d) from the menu.", item.Name, item.Price)
}

func (t *Till) orderFor(chatID int64) (*chatOrder, error) {
	if o := t.orders[chatID]; o != nil {
		return o, nil
	}
	r, err := restaurant.New(t.r.Name(), t.r.Location(), t.r.OpeningTime(), t.r.ClosingTime())
	if err != nil {
		return nil, err
	}
	o := &chatOrder{r: r, count: make(map[string]int)}
	t.orders[chatID] = o
	return o, nil
}

func (t *Till) handleOrder(chatID int64, args string) string {
	if !t.r.IsOpen() {
		return "Sorry, we are closed. " + t.hoursLine()
	}
	names := splitNames(args)
	if len(names) == 0 {
		return "Usage: /order <item>, <item>, ... (separate items with commas)"
	}
	o, err := t.orderFor(chatID)
	if err != nil {
		t.log.Error("open chat order", zap.Int64("chat_id", chatID), zap.Error(err))
		return "Something went wrong."
	}

	var found, missing []string
	for _, n := range names {
		item, ok := t.r.FindItem(n)
		if !ok {
			missing = append(missing, n)
			continue
		}
		if _, priced := o.r.FindItem(n); !priced {
			o.r.AddToMenu(item.Name, item.Price)
		}
		o.count[n]++
		found = append(found, n)
	}
	total := o.r.AddItemsToOrder(found)
	return totalReply(total, "Not on the menu", missing)
}

func (t *Till) handleCancel(chatID int64, args string) string {
	names := splitNames(args)
	if len(names) == 0 {
		return "Usage: /cancel <item>, <item>, ... (separate items with commas)"
	}
	o := t.orders[chatID]
	if o == nil {
		return totalReply(0, "Not in your order", names)
	}

	var cancelled, missing []string
	for _, n := range names {
		if o.count[n] == 0 {
			missing = append(missing, n)
			continue
		}
		o.count[n]--
		cancelled = append(cancelled, n)
	}
	total := o.r.RemoveItemsFromOrder(cancelled)
	for _, n := range cancelled {
		if o.count[n] == 0 {
			delete(o.count, n)
			_, _ = o.r.RemoveFromMenu(n)
		}
	}
	return totalReply(total, "Not in your order", missing)
}

func totalReply(total int64, label string, missing []string) string {
	reply := fmt.Sprintf("Order total: %d", total)
	if len(missing) > 0 {
		reply += "\n" + label + ": " + strings.Join(missing, ", ")
	}
	return reply
}

// splitCommand separates "/cmd@bot rest" into "/cmd" and "rest".
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	cmd, args, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

func splitNames(args string) []string {
	var names []string
	for _, part := range strings.Split(args, ",") {
		if n := strings.TrimSpace(part); n != "" {
			names = append(names, n)
		}
	}
	return names
}
