package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/engine"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/schemes"
)

type loanRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annualRate"`
	Months     int     `json:"months,omitempty"`
	Years      int     `json:"years,omitempty"`
}

type depositRequest struct {
	Amount     float64 `json:"amount"`
	AnnualRate float64 `json:"annualRate"`
	Months     int     `json:"months,omitempty"`
	Years      int     `json:"years,omitempty"`
}

// schemeRequest drives the government schemes. Amount is the yearly deposit
// for ppf and sukanya_samriddhi, the monthly deposit for post_office_rd and
// the lump sum otherwise. AnnualRate overrides the table rate.
type schemeRequest struct {
	Amount     float64          `json:"amount"`
	Years      int              `json:"years,omitempty"`
	AnnualRate *float64         `json:"annualRate,omitempty"`
	Profile    *schemes.Profile `json:"profile,omitempty"`
}

func (s schemeRequest) options() []engine.Option {
	var opts []engine.Option
	if s.AnnualRate != nil {
		opts = append(opts, engine.WithRate(*s.AnnualRate))
	}
	if s.Profile != nil {
		opts = append(opts, engine.WithProfile(*s.Profile))
	}
	return opts
}

func (h *Handler) handleEMI(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEMI"
	var req loanRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().EMI(req.Principal, req.AnnualRate, req.Months)
	h.respond(w, r, op, result.Rounded(), err)
}

func (h *Handler) handleLoan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLoan"
	var req loanRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().Loan(req.Principal, req.AnnualRate, req.Years)
	h.respond(w, r, op, result.Rounded(), err)
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	var req loanRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	months := req.Months
	if months == 0 {
		months = req.Years * constants.MonthsPerYear
	}
	schedule, err := h.Engine().Schedule(req.Principal, req.AnnualRate, months)
	h.respond(w, r, op, schedule, err)
}

func (h *Handler) handleRecurringDeposit(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRecurringDeposit"
	var req depositRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().RecurringDeposit(req.Amount, req.AnnualRate, req.Months)
	h.respond(w, r, op, result.Rounded(), err)
}

func (h *Handler) handleFixedDeposit(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleFixedDeposit"
	var req depositRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().FixedDeposit(req.Amount, req.AnnualRate, req.Years)
	h.respond(w, r, op, result.Rounded(), err)
}

func (h *Handler) handleScheme(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScheme"
	scheme := mux.Vars(r)["scheme"]
	var req schemeRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().Scheme(scheme, req.Amount, req.Years, req.options()...)
	h.respond(w, r, op, result.Rounded(), err)
}

type ppfTargetRequest struct {
	Target     float64  `json:"target"`
	Years      int      `json:"years"`
	AnnualRate *float64 `json:"annualRate,omitempty"`
}

func (h *Handler) handlePPFTarget(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePPFTarget"
	var req ppfTargetRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	var opts []engine.Option
	if req.AnnualRate != nil {
		opts = append(opts, engine.WithRate(*req.AnnualRate))
	}
	result, err := h.Engine().PPFTarget(req.Target, req.Years, opts...)
	h.respond(w, r, op, result.Rounded(), err)
}

type ppfExtensionRequest struct {
	Balance       float64  `json:"balance"`
	Years         int      `json:"years"`
	AnnualDeposit float64  `json:"annualDeposit,omitempty"`
	AnnualRate    *float64 `json:"annualRate,omitempty"`
}

func (h *Handler) handlePPFExtension(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePPFExtension"
	var req ppfExtensionRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	var opts []engine.Option
	if req.AnnualRate != nil {
		opts = append(opts, engine.WithRate(*req.AnnualRate))
	}
	result, err := h.Engine().PPFExtension(req.Balance, req.Years, req.AnnualDeposit, opts...)
	h.respond(w, r, op, result, err)
}

type ppfDrawRequest struct {
	Balance     float64 `json:"balance"`
	Percentage  float64 `json:"percentage"`
	AccountYear int     `json:"accountYear,omitempty"`
}

func (h *Handler) handlePPFLoan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePPFLoan"
	var req ppfDrawRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().PPFLoan(req.Balance, req.Percentage, req.AccountYear)
	h.respond(w, r, op, result, err)
}

func (h *Handler) handlePPFWithdrawal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePPFWithdrawal"
	var req ppfDrawRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().PPFWithdrawal(req.Balance, req.Percentage, req.AccountYear)
	h.respond(w, r, op, result, err)
}

type taxBenefitsRequest struct {
	Deposit float64 `json:"deposit"`
}

func (h *Handler) handleTaxBenefits(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTaxBenefits"
	var req taxBenefitsRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().TaxBenefits(req.Deposit)
	h.respond(w, r, op, result, err)
}

// taxImplicationsRequest takes results as returned by the other endpoints.
// A missing bracket uses the configured default.
type taxImplicationsRequest struct {
	Results []finance.Result `json:"results"`
	Bracket *float64         `json:"bracket,omitempty"`
}

func (h *Handler) handleTaxImplications(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTaxImplications"
	var req taxImplicationsRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	e := h.Engine()
	bracket := e.DefaultBracket()
	if req.Bracket != nil {
		bracket = *req.Bracket
	}
	result, err := e.TaxImplications(req.Results, bracket)
	h.respond(w, r, op, result, err)
}

type compareRequest struct {
	Amount  float64          `json:"amount"`
	Years   int              `json:"years"`
	Profile *schemes.Profile `json:"profile,omitempty"`
}

func (h *Handler) handleCompareSchemes(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompareSchemes"
	var req compareRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().CompareSchemes(req.Amount, req.Years, req.Profile)
	h.respond(w, r, op, result, err)
}

func (h *Handler) handleCompareInvestments(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompareInvestments"
	var req compareRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().CompareInvestments(req.Amount, req.Years)
	h.respond(w, r, op, result, err)
}

func (h *Handler) handleCompareLoans(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompareLoans"
	var req loanRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().CompareLoans(req.Principal, req.Years)
	h.respond(w, r, op, result, err)
}

type alternativesRequest struct {
	AnnualDeposit float64 `json:"annualDeposit"`
	Years         int     `json:"years"`
}

func (h *Handler) handleCompareAlternatives(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompareAlternatives"
	var req alternativesRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().CompareAlternatives(req.AnnualDeposit, req.Years)
	h.respond(w, r, op, result, err)
}

type gstRequest struct {
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
}

func (h *Handler) handleGSTAdd(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGSTAdd"
	var req gstRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().AddGST(req.Amount, req.Rate)
	h.respond(w, r, op, result, err)
}

func (h *Handler) handleGSTRemove(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGSTRemove"
	var req gstRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().RemoveGST(req.Amount, req.Rate)
	h.respond(w, r, op, result, err)
}

type convertRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConvert"
	var req convertRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().Convert(req.Amount, req.From, req.To)
	h.respond(w, r, op, result, err)
}

func (h *Handler) handleEligibility(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEligibility"
	var req schemes.Profile
	if !h.decode(w, r, op, &req) {
		return
	}
	result, err := h.Engine().Eligibility(req)
	h.respond(w, r, op, result, err)
}

func (h *Handler) handleRates(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.Engine().Table().Policy())
}
