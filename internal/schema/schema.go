// Package schema names the sheets and columns of the intranet workbook.
// Operations resolve columns by header name, but appended rows must follow
// the declared header order positionally.
package schema

// Sheet names.
const (
	SheetUsers          = "UTILIZADORES"
	SheetPasswordResets = "PASSWORD_RESETS"
	SheetForecasts      = "FINANCEIRO_PREVISOES"
	SheetBilling        = "FATURAMENTO"
	SheetReceivables    = "CONTAS_A_RECEBER"
	SheetPayables       = "CONTAS_A_PAGAR"
	SheetClients        = "CLIENTES"
	SheetPostos         = "POSTOS"
	SheetProposalBudget = "ORCAMENTO_PARA_PROPOSTA"
	SheetSalaryBase     = "BASE SALARIOS CONVENCAO"
	SheetProposals      = "PROPOSTAS_GERADAS"
)

// Column names of the users sheet.
const (
	ColUserEmail    = "Email"
	ColUserName     = "Nome"
	ColUserRole     = "Perfil"
	ColUserPassword = "Senha"
)

// Column names of the password reset sheet.
const (
	ColResetEmail      = "Email"
	ColResetCode       = "Code"
	ColResetExpiration = "Expiration"
)

// Value columns read by the dashboard aggregator.
const (
	ColGrossValue        = "Valor_Bruto"
	ColNetValue          = "Valor_Liquido"
	ColReceivableValue   = "VALOR"
	ColReceivableStatus  = "STATUS_PAGAMENTO"
	ColPayableValue      = "VALOR_TOTAL"
	ColPayableStatus     = "Status"
	ColSalaryBaseID      = "ID"
	ColConventionSalary  = "Salario_Convenção"
	ColClientLegalName   = "Razao_Social"
	ColClientCNPJ        = "CNPJ"
	ColClientPostoID     = "POSTO_ID"
	ColClientID          = "ID"
	ColPostoID           = "ID"
	ColPostoName         = "NOME"
)

// Role name that routes report output to the director destination.
const RoleDirector = "Diretor"

// SheetDef pairs a sheet name with its header row, used when bootstrapping
// an empty store.
type SheetDef struct {
	Name    string
	Headers []string
}

// DefaultSheets returns the full workbook layout. Seeding only ever adds
// missing sheets; existing data is left untouched.
func DefaultSheets() []SheetDef {
	return []SheetDef{
		{SheetUsers, []string{ColUserEmail, ColUserName, ColUserRole, ColUserPassword}},
		{SheetPasswordResets, []string{ColResetEmail, ColResetCode, ColResetExpiration}},
		{SheetForecasts, []string{"ID", "Data", "MES", "ANO", "Posto", ColGrossValue, "Descricao", "Responsavel"}},
		{SheetBilling, []string{"ID", "Data", "MES", "ANO", "Posto", ColGrossValue, ColNetValue}},
		{SheetReceivables, []string{"ID", "Data", "MES", "ANO", "Cliente", ColReceivableValue, ColReceivableStatus}},
		{SheetPayables, []string{"ID", "Data", "MES", "ANO", "Fornecedor", ColPayableValue, ColPayableStatus}},
		{SheetClients, []string{ColClientID, ColClientPostoID, ColClientCNPJ, ColClientLegalName, "Nome_Contato", "Celular", "Telefone", "Email", "Endereco"}},
		{SheetPostos, []string{ColPostoID, ColPostoName}},
		{SheetProposalBudget, []string{"ID", "Funcao", "Salario"}},
		{SheetSalaryBase, []string{ColSalaryBaseID, "Funcao", ColConventionSalary}},
		{SheetProposals, []string{"ID", "Data", "Cliente", "Valor_Total", "Status", "Responsavel"}},
	}
}
