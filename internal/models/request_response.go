package models

// Request models
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type ForecastRequest struct {
	Mes        string      `json:"mes" binding:"required"`
	Ano        string      `json:"ano" binding:"required"`
	PostoNome  string      `json:"postoNome" binding:"required"`
	ValorBruto interface{} `json:"valorBruto" binding:"required"`
	Descricao  string      `json:"descricao"`
}

type ClientRequest struct {
	PostoID     string `json:"postoId"`
	CNPJ        string `json:"cnpj" binding:"required"`
	RazaoSocial string `json:"razaoSocial" binding:"required"`
	NomeContato string `json:"nomeContato"`
	Celular     string `json:"celular"`
	Telefone    string `json:"telefone"`
	Email       string `json:"email"`
	Endereco    string `json:"endereco"`
}

type ProposalRecordRequest struct {
	ClienteNome string      `json:"clienteNome" binding:"required"`
	ValorTotal  interface{} `json:"valorTotal" binding:"required"`
	Responsavel string      `json:"responsavel" binding:"required"`
}

type SalaryEntryRequest struct {
	Nome    string      `json:"nome" binding:"required"`
	Salario interface{} `json:"salario" binding:"required"`
}

type SalaryUpdate struct {
	ID      string      `json:"id" binding:"required"`
	Salario interface{} `json:"salario" binding:"required"`
}

type UpdateSalariesRequest struct {
	Entries []SalaryUpdate `json:"entries" binding:"required,dive"`
}

// ProposalClient identifies the client a proposal document is issued for.
type ProposalClient struct {
	RazaoSocial string `json:"RAZAO_SOCIAL" binding:"required"`
	CNPJ        string `json:"CNPJ"`
}

// ProposalItem is one line of the services table in a generated proposal.
type ProposalItem struct {
	Cargo         string      `json:"cargo" binding:"required"`
	Escala        string      `json:"escala"`
	Quantidade    interface{} `json:"quantidade"`
	ValorUnitario interface{} `json:"valorUnitario"`
	TotalLinha    interface{} `json:"totalLinha"`
}

type ProposalPDFRequest struct {
	Cliente ProposalClient `json:"cliente" binding:"required"`
	Items   []ProposalItem `json:"items"`
	Total   string         `json:"total" binding:"required"`
}

type ReportPDFRequest struct {
	Title   string     `json:"title" binding:"required"`
	Period  string     `json:"period"`
	Headers []string   `json:"headers" binding:"required"`
	Rows    [][]string `json:"rows"`
}

// Response models
type LoginResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// StatusResponse is the structured outcome shape every write operation and
// recoverable failure reports.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AddClientResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	NewClient *Cliente `json:"newClient,omitempty"`
}

type AddSalaryEntryResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	NewEntry *SalaryEntry `json:"newEntry,omitempty"`
}

type InitialDataResponse struct {
	Postos                []Posto       `json:"postos"`
	Clientes              []Cliente     `json:"clientes"`
	OrcamentoBase         []SalaryEntry `json:"orcamentoBase"`
	BaseSalariosConvencao []SalaryEntry `json:"baseSalariosConvencao"`
}

// DashboardResponse carries one formatted BRL string per KPI. It is plain
// data: serializing and deserializing it is lossless.
type DashboardResponse struct {
	PreviaFaturamento  string `json:"previaFaturamento"`
	FaturamentoBruto   string `json:"faturamentoBruto"`
	FaturamentoLiquido string `json:"faturamentoLiquido"`
	TotalAReceber      string `json:"totalAReceber"`
	TotalRecebido      string `json:"totalRecebido"`
	TotalAPagar        string `json:"totalAPagar"`
	TotalPago          string `json:"totalPago"`
}

// KpiDetailsResponse is the drill-down payload behind one KPI. A missing
// sheet is reported through Error with empty Headers/Data, not as a fault.
type KpiDetailsResponse struct {
	Headers   []string        `json:"headers"`
	Data      [][]interface{} `json:"data"`
	SheetName string          `json:"sheetName,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type DocumentResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
