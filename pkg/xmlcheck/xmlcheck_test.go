package xmlcheck

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/testsupport"
	"github.com/goliatone/go-offergen/pkg/validation"
	"github.com/goliatone/go-offergen/pkg/xmlgen"
)

func generate(t *testing.T, doc *offer.Document, options ...xmlgen.Option) []byte {
	t.Helper()
	data, err := xmlgen.Generate(doc, options...)
	require.NoError(t, err)
	return data
}

func TestValidate_GeneratedFixtures(t *testing.T) {
	fixtures := map[string]*offer.Document{
		"electricity": testsupport.ElectricityOffer(),
		"gas":         testsupport.GasOffer(),
		"dual":        testsupport.DualOffer(),
	}
	for name, doc := range fixtures {
		t.Run(name, func(t *testing.T) {
			for _, opts := range [][]xmlgen.Option{
				nil,
				{xmlgen.WithMinify()},
				{xmlgen.WithOptimize(), xmlgen.WithSchemaLocation("offerta.xsd")},
			} {
				result := Validate(generate(t, doc, opts...))
				if !result.Valid() {
					t.Fatalf("expected generated document to pass, got %v", result.Errors())
				}
			}
		})
	}
}

func TestValidate_MalformedIsFatal(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"unclosed":   "<Offerta><IdentificativiOfferta></Offerta>",
		"two roots":  "<Offerta></Offerta><Offerta></Offerta>",
		"stray text": "<Offerta></Offerta>trailing",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			result := Validate([]byte(input))
			require.Equal(t, 1, result.Len(), "expected a single fatal error, got %v", result.Errors())
			err := result.Errors()[0]
			assert.Equal(t, validation.CodeFatal, err.Code)
			assert.Equal(t, "document", err.Field)
		})
	}
}

func TestValidate_WrongRoot(t *testing.T) {
	result := Validate([]byte("<Offer><X>1</X></Offer>"))
	require.Equal(t, 1, result.Len())
	err := result.Errors()[0]
	assert.Equal(t, validation.CodeMissingSection, err.Code)
	assert.Equal(t, "root element must be Offerta, found Offer", err.Message)
}

func TestValidate_MissingRequired(t *testing.T) {
	input := `<Offerta>
  <IdentificativiOfferta>
    <PIVA_UTENTE>ABCDEFGH12345678</PIVA_UTENTE>
  </IdentificativiOfferta>
</Offerta>`

	result := Validate([]byte(input))

	var missing []string
	for _, err := range result.Errors() {
		if err.Code == validation.CodeMissingSection {
			missing = append(missing, err.Field)
		}
	}
	want := []string{
		"Offerta.IdentificativiOfferta.COD_OFFERTA",
		"Offerta.DettaglioOfferta",
		"Offerta.MetodoAttivazione",
		"Offerta.Contatti",
		"Offerta.ValiditaOfferta",
		"Offerta.MetodoPagamento",
	}
	if diff := cmp.Diff(want, missing); diff != "" {
		t.Fatalf("missing elements mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_EnumerationIndexedWhenRepeated(t *testing.T) {
	doc := testsupport.GasOffer()
	doc.PaymentMethods[1].Method = "77"

	result := Validate(generate(t, doc))

	got := result.Messages("Offerta.MetodoPagamento[1].MODALITA_PAGAMENTO")
	require.Len(t, got, 1, "errors: %v", result.Errors())
	assert.Equal(t, `invalid value "77" for MODALITA_PAGAMENTO; allowed: `+offer.PaymentMethods.Allowed(), got[0])
	assert.Empty(t, result.Field("Offerta.MetodoPagamento[0].MODALITA_PAGAMENTO"))
}

func TestValidate_EnumerationDependsOnParent(t *testing.T) {
	doc := testsupport.GasOffer()
	// "04" is a discount price type but not a component type.
	doc.CompanyComponents[0].Type = "04"

	result := Validate(generate(t, doc))

	errs := result.Field("Offerta.ComponenteImpresa.TIPOLOGIA")
	require.Len(t, errs, 1, "errors: %v", result.Errors())
	assert.Equal(t, validation.CodeEnum, errs[0].Code)
	assert.Empty(t, result.Field("Offerta.Sconto.PREZZISconto.TIPOLOGIA"))
}

func TestValidate_Constraints(t *testing.T) {
	doc := testsupport.ElectricityOffer()
	doc.PaymentMethods[0].Description = strings.Repeat("è", 26)
	doc.OfferDetails.Name = strings.Repeat("n", 255)

	result := Validate(generate(t, doc))

	assert.Equal(t, []string{"must be at most 25 characters, found 26"},
		result.Messages("Offerta.MetodoPagamento.DESCRIZIONE"))
	assert.Empty(t, result.Field("Offerta.DettaglioOfferta.NOME_OFFERTA"))
}

func TestConstraint_Check(t *testing.T) {
	cases := []struct {
		name  string
		c     constraint
		value string
		want  string
	}{
		{"duration in range", integerIn("x", bound(-1), bound(99)), "-1", ""},
		{"duration too large", integerIn("x", bound(-1), bound(99)), "100", "must be at most 99"},
		{"duration below", integerIn("x", bound(-1), bound(99)), "-2", "must be at least -1"},
		{"not an integer", integerIn("x", bound(0), nil), "1.5", "must be an integer"},
		{"not a number", constraint{kind: number}, "abc", "must be a number"},
		{"negative power", constraint{kind: number, min: bound(0)}, "-0.5", "must be at least 0"},
		{"exact length", constraint{exactLen: 2, digits: true}, "123", "must be exactly 2 characters, found 3"},
		{"digits", constraint{exactLen: 2, digits: true}, "1a", "must contain digits only"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.check(tc.value); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidate_Dates(t *testing.T) {
	data := generate(t, testsupport.ElectricityOffer())
	data = bytes.Replace(data,
		[]byte("<DATA_INIZIO>01/01/2024_00:00:00</DATA_INIZIO>"),
		[]byte("<DATA_INIZIO>2024-01-01</DATA_INIZIO>"), 1)

	result := Validate(data)

	errs := result.Field("Offerta.ValiditaOfferta.DATA_INIZIO")
	require.Len(t, errs, 1, "errors: %v", result.Errors())
	assert.Equal(t, validation.CodeDateFormat, errs[0].Code)
	assert.Equal(t, `invalid date "2024-01-01"; expected DD/MM/YYYY_HH:MM:SS`, errs[0].Message)
	assert.Empty(t, result.Field("Offerta.ValiditaOfferta.DATA_FINE"))
	assert.Equal(t, 1, result.Len())
}

func TestValidate_MonthYear(t *testing.T) {
	doc := testsupport.GasOffer()
	doc.Discounts[0].Period.ValidUntil = "12/2025"
	data := generate(t, doc)
	require.True(t, Validate(data).Valid())

	data = bytes.Replace(data,
		[]byte("<VALIDO_FINO>12/2025</VALIDO_FINO>"),
		[]byte("<VALIDO_FINO>2025-12</VALIDO_FINO>"), 1)

	result := Validate(data)

	errs := result.Field("Offerta.Sconto.PeriodoValidita.VALIDO_FINO")
	require.Len(t, errs, 1, "errors: %v", result.Errors())
	assert.Equal(t, validation.CodeDateFormat, errs[0].Code)
	assert.Equal(t, `invalid date "2025-12"; expected MM/YYYY`, errs[0].Message)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "offer.xml")
	require.NoError(t, os.WriteFile(path, generate(t, testsupport.ElectricityOffer()), 0o644))

	if result := ValidateFile(path); !result.Valid() {
		t.Fatalf("expected valid file, got %v", result.Errors())
	}

	result := ValidateFile(filepath.Join(dir, "missing.xml"))
	require.Equal(t, 1, result.Len())
	assert.Equal(t, validation.CodeFatal, result.Errors()[0].Code)
	assert.True(t, strings.HasPrefix(result.Errors()[0].Message, "cannot read document:"))
}

func TestFind_IndexesOnlyRepeatedSiblings(t *testing.T) {
	root, err := parse(strings.NewReader(`<Offerta>
  <MetodoPagamento><MODALITA_PAGAMENTO>01</MODALITA_PAGAMENTO></MetodoPagamento>
  <MetodoPagamento><MODALITA_PAGAMENTO>02</MODALITA_PAGAMENTO></MetodoPagamento>
  <Sconto><NOME>Loyalty</NOME></Sconto>
</Offerta>`))
	require.NoError(t, err)

	fieldsAt := func(path string) []string {
		var out []string
		for _, m := range find(root, path) {
			out = append(out, m.field)
		}
		return out
	}

	want := []string{
		"Offerta.MetodoPagamento[0].MODALITA_PAGAMENTO",
		"Offerta.MetodoPagamento[1].MODALITA_PAGAMENTO",
	}
	if diff := cmp.Diff(want, fieldsAt("Offerta.MetodoPagamento.MODALITA_PAGAMENTO")); diff != "" {
		t.Fatalf("repeated fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Offerta.Sconto.NOME"}, fieldsAt("Offerta.Sconto.NOME")); diff != "" {
		t.Fatalf("single occurrence mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, fieldsAt("Offerta.ZoneOfferta.REGIONE"))
	assert.Empty(t, fieldsAt("Other.Sconto"))
}
