package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/lbarreto/equifinance/internal/category"
	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
)

// newCategoryOption is the select entry that reveals the free-text input.
const newCategoryOption = "+ new category"

type entryState int

const (
	entryStateForm entryState = iota
	entryStateResult
)

// EntryModel is the new-transaction form. The owner is always the active
// viewer; the form only asks for what the viewer cannot be assumed to mean.
type EntryModel struct {
	CommonModel
	txService *transaction.Service
	registry  *category.Registry
	viewer    participant.ID

	state entryState
	form  *huh.Form

	// Form bindings
	formAmount       string
	formType         transaction.Type
	formCategory     string
	formNewCategory  string
	formDate         string
	formScope        transaction.Scope
	formOnCard       bool
	formInstallments string

	status string
	err    error
}

func NewEntryModel(txSvc *transaction.Service, registry *category.Registry, viewer participant.ID) EntryModel {
	m := EntryModel{
		txService: txSvc,
		registry:  registry,
		viewer:    viewer,

		formType:         transaction.TypeExpense,
		formDate:         time.Now().Format(time.DateOnly),
		formScope:        transaction.ScopeShared,
		formInstallments: "2",
	}

	m.form = m.buildForm()

	return m
}

func (m EntryModel) Title() string { return "New Transaction" }
func (m EntryModel) ShortHelp() string {
	if m.state == entryStateResult {
		return "Enter: add another | Esc: back"
	}

	return "Navigate form | Esc: cancel"
}

func (m EntryModel) buildForm() *huh.Form {
	categoryOptions := make([]huh.Option[string], 0, 8)
	for _, name := range m.registry.List() {
		categoryOptions = append(categoryOptions, huh.NewOption(name, name))
	}

	categoryOptions = append(categoryOptions, huh.NewOption(newCategoryOption, newCategoryOption))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				).
				Value(&m.formType),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("new_category").
				Title("New category name").
				Placeholder("only used with \"+ new category\"").
				Value(&m.formNewCategory),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := time.Parse(time.DateOnly, s)
					return err
				}),

			huh.NewSelect[transaction.Scope]().
				Key("scope").
				Title("Scope").
				Options(
					huh.NewOption("Shared", transaction.ScopeShared),
					huh.NewOption("Private", transaction.ScopePrivate),
				).
				Value(&m.formScope),

			huh.NewConfirm().
				Key("on_card").
				Title("Paid on credit card?").
				Value(&m.formOnCard),

			huh.NewInput().
				Key("installments").
				Title("Installments").
				Value(&m.formInstallments).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("installments must be a positive integer")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}

	if d.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}

	return nil
}

func (m EntryModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entrySavedMsg:
		m.state = entryStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.err = nil
		m.status = fmt.Sprintf("Recorded %s (%s).", FormatAmount(msg.tx.Amount), msg.tx.Category)

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == entryStateResult && msg.Type == tea.KeyEnter {
			reset := NewEntryModel(m.txService, m.registry, m.viewer)
			return reset, reset.Init()
		}
	}

	if m.state != entryStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m EntryModel) View() string {
	if m.state == entryStateResult {
		style := lipgloss.NewStyle().Padding(2)

		color := "46"
		if m.err != nil {
			color = "196"
		}

		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.status) +
				"\n\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
		)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.NewStyle().Bold(true).Render("New Transaction") + "\n\n" + m.form.View(),
	)
}

// Messages

type entrySavedMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m EntryModel) saveCmd() tea.Cmd {
	amountStr := strings.TrimSpace(m.form.GetString("amount"))
	txType := m.form.Get("type").(transaction.Type)
	categoryName := m.form.GetString("category")
	newCategory := strings.TrimSpace(m.form.GetString("new_category"))
	dateStr := m.form.GetString("date")
	scope := m.form.Get("scope").(transaction.Scope)
	onCard := m.form.GetBool("on_card")
	installmentsStr := strings.TrimSpace(m.form.GetString("installments"))

	registry := m.registry
	txService := m.txService
	viewer := m.viewer

	return func() tea.Msg {
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return entrySavedMsg{err: err}
		}

		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return entrySavedMsg{err: err}
		}

		if categoryName == newCategoryOption {
			if newCategory == "" {
				return entrySavedMsg{err: fmt.Errorf("new category name is empty")}
			}

			if err := registry.Add(newCategory); err != nil && !errors.Is(err, category.ErrDuplicate) {
				return entrySavedMsg{err: err}
			}

			categoryName = newCategory
		}

		params := transaction.CreateParams{
			Amount:   amount,
			Type:     txType,
			Category: categoryName,
			Date:     date,
			OwnerID:  viewer,
			Scope:    scope,
		}

		if onCard && installmentsStr != "" {
			n, err := strconv.Atoi(installmentsStr)
			if err != nil {
				return entrySavedMsg{err: err}
			}

			if n > 1 {
				params.Card = &transaction.CardDetails{Installments: n, StartDate: date}
			}
		}

		ctx, cancel := OpCtx()
		defer cancel()

		tx, err := txService.Create(ctx, params)
		if err != nil {
			return entrySavedMsg{err: err}
		}

		return entrySavedMsg{tx: tx}
	}
}
