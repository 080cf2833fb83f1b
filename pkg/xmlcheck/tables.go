package xmlcheck

import (
	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/shopspring/decimal"
)

const rootElement = "Offerta"

// requiredPaths must be present in every document. A path whose ancestor is
// already missing is not reported again.
var requiredPaths = []string{
	"Offerta.IdentificativiOfferta",
	"Offerta.IdentificativiOfferta.PIVA_UTENTE",
	"Offerta.IdentificativiOfferta.COD_OFFERTA",
	"Offerta.DettaglioOfferta",
	"Offerta.DettaglioOfferta.TIPO_MERCATO",
	"Offerta.DettaglioOfferta.TIPO_CLIENTE",
	"Offerta.DettaglioOfferta.TIPO_OFFERTA",
	"Offerta.DettaglioOfferta.TIPOLOGIA_ATT_CONTR",
	"Offerta.DettaglioOfferta.NOME_OFFERTA",
	"Offerta.DettaglioOfferta.DESCRIZIONE",
	"Offerta.DettaglioOfferta.DURATA",
	"Offerta.DettaglioOfferta.GARANZIE",
	"Offerta.MetodoAttivazione",
	"Offerta.MetodoAttivazione.MODALITA",
	"Offerta.Contatti",
	"Offerta.Contatti.TELEFONO",
	"Offerta.ValiditaOfferta",
	"Offerta.ValiditaOfferta.DATA_INIZIO",
	"Offerta.MetodoPagamento",
	"Offerta.MetodoPagamento.MODALITA_PAGAMENTO",
}

type numberKind int

const (
	notNumeric numberKind = iota
	integer
	number
)

type constraint struct {
	path     string
	maxLen   int
	exactLen int
	digits   bool
	kind     numberKind
	min      *decimal.Decimal
	max      *decimal.Decimal
}

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func text(path string, maxLen int) constraint {
	return constraint{path: path, maxLen: maxLen}
}

func integerIn(path string, lo, hi *decimal.Decimal) constraint {
	return constraint{path: path, kind: integer, min: lo, max: hi}
}

var constraints = []constraint{
	{path: "Offerta.IdentificativiOfferta.PIVA_UTENTE", exactLen: 16},
	text("Offerta.IdentificativiOfferta.COD_OFFERTA", 32),
	text("Offerta.DettaglioOfferta.NOME_OFFERTA", 255),
	text("Offerta.DettaglioOfferta.DESCRIZIONE", 3000),
	integerIn("Offerta.DettaglioOfferta.DURATA", bound(-1), bound(99)),
	text("Offerta.DettaglioOfferta.GARANZIE", 3000),
	text("Offerta.MetodoAttivazione.DESCRIZIONE", 2000),
	{path: "Offerta.Contatti.TELEFONO", maxLen: 15, digits: true},
	text("Offerta.Contatti.URL_SITO_VENDITORE", 100),
	text("Offerta.Contatti.URL_OFFERTA", 100),
	text("Offerta.MetodoPagamento.DESCRIZIONE", 25),
	text("Offerta.RiferimentiPrezzoEnergia.ALTRO", 3000),
	integerIn("Offerta.CaratteristicheOfferta.CONSUMO_MIN", bound(0), nil),
	integerIn("Offerta.CaratteristicheOfferta.CONSUMO_MAX", bound(0), nil),
	{path: "Offerta.CaratteristicheOfferta.POTENZA_MIN", kind: number, min: bound(0)},
	{path: "Offerta.CaratteristicheOfferta.POTENZA_MAX", kind: number, min: bound(0)},
	text("Offerta.OffertaDUAL.OFFERTE_CONGIUNTE_EE", 32),
	text("Offerta.OffertaDUAL.OFFERTE_CONGIUNTE_GAS", 32),
	text("Offerta.FasceOrarieSettimanale.F_LUNEDI", 49),
	text("Offerta.FasceOrarieSettimanale.F_MARTEDI", 49),
	text("Offerta.FasceOrarieSettimanale.F_MERCOLEDI", 49),
	text("Offerta.FasceOrarieSettimanale.F_GIOVEDI", 49),
	text("Offerta.FasceOrarieSettimanale.F_VENERDI", 49),
	text("Offerta.FasceOrarieSettimanale.F_SABATO", 49),
	text("Offerta.FasceOrarieSettimanale.F_DOMENICA", 49),
	text("Offerta.FasceOrarieSettimanale.F_FESTIVITA", 49),
	{path: "Offerta.Dispacciamento.VALORE_DISP", kind: number},
	text("Offerta.Dispacciamento.NOME", 25),
	text("Offerta.Dispacciamento.DESCRIZIONE", 255),
	text("Offerta.ComponenteImpresa.NOME", 255),
	text("Offerta.ComponenteImpresa.DESCRIZIONE", 255),
	integerIn("Offerta.ComponenteImpresa.IntervalloPrezzi.CONSUMO_DA", bound(0), nil),
	integerIn("Offerta.ComponenteImpresa.IntervalloPrezzi.CONSUMO_A", bound(0), nil),
	{path: "Offerta.ComponenteImpresa.IntervalloPrezzi.PREZZO", kind: number},
	integerIn("Offerta.ComponenteImpresa.IntervalloPrezzi.PeriodoValidita.DURATA", bound(1), bound(99)),
	text("Offerta.CondizioniContrattuali.ALTRO", 20),
	text("Offerta.CondizioniContrattuali.DESCRIZIONE", 3000),
	{path: "Offerta.ZoneOfferta.REGIONE", exactLen: 2, digits: true},
	{path: "Offerta.ZoneOfferta.PROVINCIA", exactLen: 3, digits: true},
	{path: "Offerta.ZoneOfferta.COMUNE", exactLen: 6, digits: true},
	text("Offerta.Sconto.NOME", 255),
	text("Offerta.Sconto.DESCRIZIONE", 3000),
	integerIn("Offerta.Sconto.PeriodoValidita.DURATA", bound(1), bound(99)),
	text("Offerta.Sconto.Condizione.DESCRIZIONE_CONDIZIONE", 3000),
	integerIn("Offerta.Sconto.PREZZISconto.VALIDO_DA", bound(0), nil),
	integerIn("Offerta.Sconto.PREZZISconto.VALIDO_FINO", bound(0), nil),
	{path: "Offerta.Sconto.PREZZISconto.PREZZO", kind: number},
	text("Offerta.ProdottiServiziAggiuntivi.NOME", 255),
	text("Offerta.ProdottiServiziAggiuntivi.DETTAGLIO", 3000),
	text("Offerta.ProdottiServiziAggiuntivi.DETTAGLI_MACROAREA", 3000),
}

type enumeration struct {
	path string
	enum *offer.Enum
}

// enumerations is keyed by full path because element names such as TIPOLOGIA
// and MACROAREA carry different code sets under different parents.
var enumerations = []enumeration{
	{"Offerta.DettaglioOfferta.TIPO_MERCATO", offer.MarketTypes},
	{"Offerta.DettaglioOfferta.OFFERTA_SINGOLA", offer.SingleOffer},
	{"Offerta.DettaglioOfferta.TIPO_CLIENTE", offer.ClientTypes},
	{"Offerta.DettaglioOfferta.DOMESTICO_RESIDENTE", offer.ResidentialStatuses},
	{"Offerta.DettaglioOfferta.TIPO_OFFERTA", offer.OfferTypes},
	{"Offerta.DettaglioOfferta.TIPOLOGIA_ATT_CONTR", offer.ContractActivations},
	{"Offerta.MetodoAttivazione.MODALITA", offer.ActivationMethodCodes},
	{"Offerta.MetodoPagamento.MODALITA_PAGAMENTO", offer.PaymentMethods},
	{"Offerta.RiferimentiPrezzoEnergia.IDX_PREZZO_ENERGIA", offer.PriceIndexes},
	{"Offerta.ComponentiRegolate.CODICE", offer.RegulatedComponentCodes},
	{"Offerta.TipoPrezzo.TIPOLOGIA_FASCE", offer.TimeBandTypologies},
	{"Offerta.Dispacciamento.TIPO_DISPACCIAMENTO", offer.DispatchingTypes},
	{"Offerta.ComponenteImpresa.TIPOLOGIA", offer.ComponentTypes},
	{"Offerta.ComponenteImpresa.MACROAREA", offer.ComponentMacroAreas},
	{"Offerta.ComponenteImpresa.IntervalloPrezzi.FASCIA_COMPONENTE", offer.ComponentBands},
	{"Offerta.ComponenteImpresa.IntervalloPrezzi.UNITA_MISURA", offer.Units},
	{"Offerta.ComponenteImpresa.IntervalloPrezzi.PeriodoValidita.MESE_VALIDITA", offer.Months},
	{"Offerta.CondizioniContrattuali.TIPOLOGIA_CONDIZIONE", offer.ContractualConditionTypes},
	{"Offerta.CondizioniContrattuali.LIMITANTE", offer.LimitingFlags},
	{"Offerta.Sconto.VALIDITA", offer.DiscountValidities},
	{"Offerta.Sconto.IVA_SCONTO", offer.VATApplicability},
	{"Offerta.Sconto.PeriodoValidita.MESE_VALIDITA", offer.Months},
	{"Offerta.Sconto.Condizione.CONDIZIONE_APPLICAZIONE", offer.DiscountConditions},
	{"Offerta.Sconto.PREZZISconto.TIPOLOGIA", offer.DiscountPriceTypes},
	{"Offerta.Sconto.PREZZISconto.UNITA_MISURA", offer.Units},
	{"Offerta.ProdottiServiziAggiuntivi.MACROAREA", offer.ServiceMacroAreas},
}

type dateField struct {
	path      string
	monthYear bool
}

var dateFields = []dateField{
	{path: "Offerta.ValiditaOfferta.DATA_INIZIO"},
	{path: "Offerta.ValiditaOfferta.DATA_FINE"},
	{path: "Offerta.ComponenteImpresa.IntervalloPrezzi.PeriodoValidita.VALIDO_FINO", monthYear: true},
	{path: "Offerta.Sconto.PeriodoValidita.VALIDO_FINO", monthYear: true},
}
