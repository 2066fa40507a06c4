package planilha

// Profile describes one recognized header layout.
type Profile struct {
	Name            string
	DateCol         string
	AmountCol       string
	TypeCol         string
	CategoryCol     string
	OwnerCol        string
	ScopeCol        string
	InstallmentsCol string // optional

	// value vocabularies
	ExpenseValues []string
	IncomeValues  []string
	SharedValues  []string
	PrivateValues []string
}

func (p *Profile) requiredCols() []string {
	return []string{p.DateCol, p.AmountCol, p.TypeCol, p.CategoryCol, p.OwnerCol, p.ScopeCol}
}

var profiles = []Profile{
	{
		Name:            "portuguese",
		DateCol:         "Data",
		AmountCol:       "Valor",
		TypeCol:         "Tipo",
		CategoryCol:     "Categoria",
		OwnerCol:        "Dono",
		ScopeCol:        "Escopo",
		InstallmentsCol: "Parcelas",
		ExpenseValues:   []string{"gasto", "despesa"},
		IncomeValues:    []string{"ganho", "receita", "renda"},
		SharedValues:    []string{"compartilhado", "casal"},
		PrivateValues:   []string{"privado", "pessoal"},
	},
	{
		Name:            "english",
		DateCol:         "Date",
		AmountCol:       "Amount",
		TypeCol:         "Type",
		CategoryCol:     "Category",
		OwnerCol:        "Owner",
		ScopeCol:        "Scope",
		InstallmentsCol: "Installments",
		ExpenseValues:   []string{"expense"},
		IncomeValues:    []string{"income"},
		SharedValues:    []string{"shared"},
		PrivateValues:   []string{"private"},
	},
}
