package orchestrator_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/orchestrator"
	"github.com/goliatone/go-offergen/pkg/testsupport"
	"github.com/goliatone/go-offergen/pkg/validation"
	"github.com/goliatone/go-offergen/pkg/xmlgen"
)

func TestOrchestrator_GenerateElectricity(t *testing.T) {
	orch := orchestrator.New()

	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{Document: testsupport.ElectricityOffer()})
	require.NoError(t, err)

	assert.True(t, out.Result.Valid())
	assert.Equal(t, "ABCDEFGH12345678_INSERIMENTO_WINTEROFFER2024.XML", out.FileName)

	want, err := xmlgen.Generate(testsupport.ElectricityOffer())
	require.NoError(t, err)
	if diff := cmp.Diff(string(want), string(out.XML)); diff != "" {
		t.Fatalf("xml mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_FileNameVariants(t *testing.T) {
	at := time.UnixMilli(1718000000123)
	orch := orchestrator.New(orchestrator.WithClock(func() time.Time { return at }))
	ctx := testsupport.Context()

	out, err := orch.Generate(ctx, orchestrator.Request{
		Document: testsupport.GasOffer(),
		Action:   offer.ActionUpdate,
		Unique:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH12345678_AGGIORNAMENTO_GASINDEX_1718000000123.XML", out.FileName)

	out, err = orch.Generate(ctx, orchestrator.Request{
		Document:    testsupport.GasOffer(),
		Description: "gas/var 01",
	})
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH12345678_INSERIMENTO_GASVAR01.XML", out.FileName)
}

func TestOrchestrator_InvalidDocument(t *testing.T) {
	doc := testsupport.ElectricityOffer()
	doc.Validity = nil

	out, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{Document: doc})

	var invalid *orchestrator.InvalidDocumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDocumentError, got %v", err)
	}
	assert.False(t, invalid.Result.Valid())
	assert.False(t, out.Result.Valid())
	assert.Empty(t, out.XML)
	assert.Empty(t, out.FileName)
	assert.NotEmpty(t, out.Result.Field("validity"))
}

func TestOrchestrator_SignedOrDecimalCodesRejectedBeforeGeneration(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*offer.Document)
	}{
		{"international phone", func(d *offer.Document) { d.ContactInformation.Phone = "+39061234567" }},
		{"negative phone", func(d *offer.Document) { d.ContactInformation.Phone = "-800123" }},
		{"decimal phone", func(d *offer.Document) { d.ContactInformation.Phone = "800.123" }},
		{"signed region", func(d *offer.Document) { d.Zones.Regions = []string{"-1"} }},
		{"signed municipality", func(d *offer.Document) { d.Zones.Municipalities = []string{"+12345"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := testsupport.ElectricityOffer()
			tc.mutate(doc)

			out, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{Document: doc})
			require.Error(t, err)
			assert.False(t, errors.Is(err, orchestrator.ErrSelfCheck), "unexpected self-check failure: %v", err)

			var invalid *orchestrator.InvalidDocumentError
			require.True(t, errors.As(err, &invalid), "expected InvalidDocumentError, got %v", err)

			var messages []string
			for _, e := range out.Result.Errors() {
				messages = append(messages, e.Message)
			}
			assert.Contains(t, messages, "must contain digits only")
		})
	}
}

func TestOrchestrator_SelfCheck(t *testing.T) {
	rejecting := orchestrator.Checker(func([]byte) validation.Result {
		return validation.NewResult([]validation.Error{
			validation.AtField(validation.CodeConstraint, "Offerta.Contatti.TELEFONO", "too long"),
		})
	})
	req := orchestrator.Request{Document: testsupport.ElectricityOffer()}

	out, err := orchestrator.New(orchestrator.WithChecker(rejecting)).Generate(testsupport.Context(), req)
	require.ErrorIs(t, err, orchestrator.ErrSelfCheck)
	var selfCheck *orchestrator.SelfCheckError
	require.True(t, errors.As(err, &selfCheck))
	assert.Equal(t, out.FileName, selfCheck.FileName)
	assert.Equal(t, 1, selfCheck.Result.Len())
	assert.NotEmpty(t, out.XML)

	_, err = orchestrator.New(orchestrator.WithChecker(rejecting), orchestrator.WithSelfCheck(false)).
		Generate(testsupport.Context(), req)
	require.NoError(t, err)
}

func TestOrchestrator_RequestErrors(t *testing.T) {
	orch := orchestrator.New()

	_, err := orch.Generate(testsupport.Context(), orchestrator.Request{})
	require.ErrorIs(t, err, orchestrator.ErrNilDocument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = orch.Generate(ctx, orchestrator.Request{Document: testsupport.GasOffer()})
	require.ErrorIs(t, err, context.Canceled)

	_, err = orch.Generate(testsupport.Context(), orchestrator.Request{
		Document: testsupport.GasOffer(),
		Action:   offer.Action("delete"),
	})
	require.Error(t, err)
}

func TestOrchestrator_NormalizeDoesNotMutateCaller(t *testing.T) {
	doc := testsupport.GasOffer()
	doc.Identification.IdentityCode = " abcdefgh12345678 "

	orch := orchestrator.New(orchestrator.WithTransformers(orchestrator.Normalize))
	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{Document: doc})
	require.NoError(t, err)

	assert.Equal(t, "ABCDEFGH12345678_INSERIMENTO_GASINDEX.XML", out.FileName)
	assert.Equal(t, " abcdefgh12345678 ", doc.Identification.IdentityCode)
}

func TestOrchestrator_PresetFillsMissingSections(t *testing.T) {
	fsys := fstest.MapFS{
		"preset.json": {Data: []byte(`{
  "contactInformation": {"phone": "800999000"},
  "paymentMethods": [{"method": "02"}]
}`)},
	}
	preset, err := orchestrator.NewPresetTransformerFromFS(fsys, "preset.json")
	require.NoError(t, err)
	assert.Equal(t, []offer.SectionName{offer.SectionContactInformation, offer.SectionPaymentMethods}, preset.Sections())

	doc := testsupport.GasOffer()
	doc.ContactInformation = nil

	orch := orchestrator.New(orchestrator.WithTransformers(preset))
	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{Document: doc})
	require.NoError(t, err)

	body := string(out.XML)
	assert.Contains(t, body, "<TELEFONO>800999000</TELEFONO>")
	// Payment methods were present and are kept.
	assert.NotContains(t, body, "<MODALITA_PAGAMENTO>02</MODALITA_PAGAMENTO>")
	assert.Nil(t, doc.ContactInformation)
}

func TestNewPresetTransformer_Errors(t *testing.T) {
	_, err := orchestrator.NewPresetTransformer([]byte("  "))
	require.Error(t, err)

	_, err = orchestrator.NewPresetTransformer([]byte("{"))
	require.Error(t, err)

	_, err = orchestrator.NewPresetTransformerFromFS(fstest.MapFS{}, "missing.json")
	require.Error(t, err)
}

func TestOrchestrator_GenerateBatch(t *testing.T) {
	invalid := testsupport.ElectricityOffer()
	invalid.OfferDetails = nil

	sink := &xmlgen.MemorySink{}
	report := orchestrator.New().GenerateBatch(testsupport.Context(), orchestrator.Requests(
		orchestrator.Request{Document: testsupport.ElectricityOffer()},
		orchestrator.Request{Document: invalid},
		orchestrator.Request{Document: testsupport.GasOffer()},
	), sink)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.OK())
	assert.Equal(t, []string{
		"ABCDEFGH12345678_INSERIMENTO_WINTEROFFER2024.XML",
		"ABCDEFGH12345678_INSERIMENTO_GASINDEX.XML",
	}, report.Emitted)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "#1", report.Failures[0].Key)
	var invalidErr *orchestrator.InvalidDocumentError
	assert.True(t, errors.As(report.Failures[0].Err, &invalidErr))
	assert.Equal(t, report.Emitted, sink.Keys())
}

func TestOrchestrator_GenerateBatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sink := xmlgen.SinkFunc(func(context.Context, string, []byte) error {
		cancel()
		return nil
	})

	report := orchestrator.New().GenerateBatch(ctx, orchestrator.Requests(
		orchestrator.Request{Document: testsupport.ElectricityOffer()},
		orchestrator.Request{Document: testsupport.GasOffer()},
	), sink)

	require.ErrorIs(t, report.Err, context.Canceled)
	assert.Len(t, report.Emitted, 1)
}
