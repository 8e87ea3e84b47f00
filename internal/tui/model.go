// Package tui is the terminal storefront: a bubbletea program that filters the
// catalogue and edits a cart persisted under a single store key.
package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"mini-storefront/internal/cart"
	"mini-storefront/internal/filter"
	"mini-storefront/internal/model"
	"mini-storefront/internal/service"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Focus identifies the widget receiving key presses.
type Focus int

const (
	FocusSearch Focus = iota
	FocusMin
	FocusMax
	FocusCategory
	FocusProducts
	FocusCart
	focusCount
)

// Model is the storefront view state. Filter criteria live only here;
// the cart is owned by the service.
type Model struct {
	ctx     context.Context
	service service.StorefrontService
	key     string
	styles  Styles

	search textinput.Model
	min    textinput.Model
	max    textinput.Model

	categories  []string // AnyCategory first
	categoryIdx int

	products      []model.Product
	cart          model.Cart
	productCursor int
	cartCursor    int

	focus  Focus
	status string
	width  int
}

// New creates the storefront model for the cart stored under key.
func New(ctx context.Context, svc service.StorefrontService, key string) Model {
	defaults := svc.DefaultCriteria()

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "product name"
	search.CharLimit = 64
	search.Focus()

	minInput := textinput.New()
	minInput.Prompt = "Min: "
	minInput.CharLimit = 10
	minInput.SetValue(defaults.MinPrice.String())

	maxInput := textinput.New()
	maxInput.Prompt = "Max: "
	maxInput.CharLimit = 10
	maxInput.SetValue(defaults.MaxPrice.String())

	m := Model{
		ctx:        ctx,
		service:    svc,
		key:        key,
		styles:     DefaultStyles(),
		search:     search,
		min:        minInput,
		max:        maxInput,
		categories: append([]string{model.AnyCategory}, svc.Categories()...),
		focus:      FocusSearch,
	}
	m.cart = svc.Cart(ctx, key)
	m.refresh()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Criteria returns the filter criteria described by the current inputs.
// Malformed prices fall back to the defaults.
func (m Model) Criteria() model.FilterCriteria {
	values := url.Values{}
	values.Set(filter.ParamSearch, m.search.Value())
	values.Set(filter.ParamMin, m.min.Value())
	values.Set(filter.ParamMax, m.max.Value())
	values.Set(filter.ParamCategory, m.categories[m.categoryIdx])
	return filter.ParseCriteria(values)
}

// Products returns the currently displayed products.
func (m Model) Products() []model.Product { return m.products }

// Cart returns the currently displayed cart.
func (m Model) Cart() model.Cart { return m.cart }

// Focus returns the focused widget.
func (m Model) Focus() Focus { return m.focus }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			return m.setFocus((m.focus + 1) % focusCount), nil
		case "shift+tab":
			return m.setFocus((m.focus + focusCount - 1) % focusCount), nil
		}

		switch m.focus {
		case FocusSearch, FocusMin, FocusMax:
			return m.updateInput(msg)
		case FocusCategory:
			return m.updateCategory(msg), nil
		case FocusProducts:
			return m.updateProducts(msg)
		case FocusCart:
			return m.updateCart(msg)
		}
	}

	return m, nil
}

func (m Model) setFocus(f Focus) Model {
	m.search.Blur()
	m.min.Blur()
	m.max.Blur()

	switch f {
	case FocusSearch:
		m.search.Focus()
		m.search.CursorEnd()
	case FocusMin:
		m.min.Focus()
		m.min.CursorEnd()
	case FocusMax:
		m.max.Focus()
		m.max.CursorEnd()
	}
	m.focus = f
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusSearch:
		m.search, cmd = m.search.Update(msg)
	case FocusMin:
		m.min, cmd = m.min.Update(msg)
	case FocusMax:
		m.max, cmd = m.max.Update(msg)
	}
	m.refresh()
	return m, cmd
}

func (m Model) updateCategory(msg tea.KeyMsg) Model {
	n := len(m.categories)
	switch msg.String() {
	case "right", "l", " ", "enter":
		m.categoryIdx = (m.categoryIdx + 1) % n
	case "left", "h":
		m.categoryIdx = (m.categoryIdx + n - 1) % n
	}
	m.refresh()
	return m
}

func (m Model) updateProducts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.productCursor > 0 {
			m.productCursor--
		}
	case "down", "j":
		if m.productCursor < len(m.products)-1 {
			m.productCursor++
		}
	case "enter":
		if p, ok := m.selectedProduct(); ok {
			c, err := m.service.AddToCart(m.ctx, m.key, p.ID)
			m = m.apply(c, err, "Added "+p.Name)
		}
	case "d":
		if p, ok := m.selectedProduct(); ok {
			c, err := m.service.RemoveFromCart(m.ctx, m.key, p.ID)
			m = m.apply(c, err, "Removed "+p.Name)
		}
	}
	return m, nil
}

func (m Model) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(m.cart)-1 {
			m.cartCursor++
		}
	case "enter":
		if m.cartCursor < len(m.cart) {
			line := m.cart[m.cartCursor]
			c, err := m.service.AddToCart(m.ctx, m.key, line.ID)
			m = m.apply(c, err, "Added "+line.Name)
		}
	case "d", "delete", "backspace":
		if m.cartCursor < len(m.cart) {
			line := m.cart[m.cartCursor]
			c, err := m.service.RemoveFromCart(m.ctx, m.key, line.ID)
			m = m.apply(c, err, "Removed "+line.Name)
		}
	}
	return m, nil
}

// apply stores the cart returned by a service mutation and sets the status line.
func (m Model) apply(c model.Cart, err error, status string) Model {
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.cart = c
	m.status = status
	if m.cartCursor >= len(m.cart) && m.cartCursor > 0 {
		m.cartCursor = len(m.cart) - 1
	}
	return m
}

func (m Model) selectedProduct() (model.Product, bool) {
	if m.productCursor < 0 || m.productCursor >= len(m.products) {
		return model.Product{}, false
	}
	return m.products[m.productCursor], true
}

// refresh reapplies the filter and keeps the product cursor in range.
func (m *Model) refresh() {
	m.products = m.service.Browse(m.Criteria())
	if m.productCursor >= len(m.products) {
		m.productCursor = len(m.products) - 1
	}
	if m.productCursor < 0 {
		m.productCursor = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Mini Storefront"))
	b.WriteString("\n\n")

	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.min.View() + "   " + m.max.View())
	b.WriteString("\n")

	category := fmt.Sprintf("Category: < %s >", m.categories[m.categoryIdx])
	if m.focus == FocusCategory {
		category = m.styles.Focused.Render(category)
	}
	b.WriteString(category)
	b.WriteString("\n\n")

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Pane.Render(m.productsView()),
		m.styles.Pane.Render(m.cartView()),
	)
	b.WriteString(panes)
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.styles.Muted.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Footer.Render("tab: next field  enter: add  d: remove  esc: quit"))

	return b.String()
}

func (m Model) productsView() string {
	var b strings.Builder
	b.WriteString(m.title("Products", m.focus == FocusProducts))
	b.WriteString("\n")

	if len(m.products) == 0 {
		b.WriteString(m.styles.Muted.Render("No products match"))
		return b.String()
	}

	for i, p := range m.products {
		line := fmt.Sprintf("%-12s %-12s %10s", p.Name, p.Category, "$"+p.Price.StringFixed(2))
		b.WriteString(m.row(line, m.focus == FocusProducts && i == m.productCursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) cartView() string {
	var b strings.Builder
	b.WriteString(m.title(fmt.Sprintf("Cart (%d)", cart.Count(m.cart)), m.focus == FocusCart))
	b.WriteString("\n")

	if len(m.cart) == 0 {
		b.WriteString(m.styles.Muted.Render("Your cart is empty"))
		return b.String()
	}

	for i, line := range m.cart {
		text := fmt.Sprintf("%-12s x%-3d %10s", line.Name, line.Quantity, "$"+line.Price.StringFixed(2))
		b.WriteString(m.row(text, m.focus == FocusCart && i == m.cartCursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) title(text string, focused bool) string {
	if focused {
		return m.styles.Focused.Render("> " + text)
	}
	return m.styles.Title.Render("  " + text)
}

func (m Model) row(text string, selected bool) string {
	if selected {
		return m.styles.Selected.Render("> " + text)
	}
	return "  " + text
}
