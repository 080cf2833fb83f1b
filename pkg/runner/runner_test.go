package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/rules"
	"github.com/goliatone/go-offergen/pkg/rules/business"
	"github.com/goliatone/go-offergen/pkg/schema"
	"github.com/goliatone/go-offergen/pkg/testsupport"
	"github.com/goliatone/go-offergen/pkg/validation"
)

func fieldsOf(result validation.Result) []string {
	var out []string
	for _, err := range result.Errors() {
		out = append(out, err.Field)
	}
	return out
}

func TestRun_ValidFixtures(t *testing.T) {
	r := New()
	for name, doc := range map[string]*offer.Document{
		"electricity": testsupport.ElectricityOffer(),
		"gas":         testsupport.GasOffer(),
		"dual":        testsupport.DualOffer(),
	} {
		result, err := r.Run(context.Background(), doc, offer.ActionInsert)
		require.NoError(t, err)
		assert.True(t, result.Valid(), "%s: %v", name, result.Errors())
	}
}

func TestRun_JSONFixture(t *testing.T) {
	doc := testsupport.LoadDocument(t, testsupport.Fixture(t, "electricity_offer.json"))
	result, err := New().Run(context.Background(), doc, offer.ActionUpdate)
	require.NoError(t, err)
	assert.True(t, result.Valid(), "%v", result.Errors())
}

func brokenDocument() *offer.Document {
	doc := testsupport.ElectricityOffer()
	doc.Identification.IdentityCode = "BAD"
	doc.OfferDetails.SingleOffer = ""
	doc.PaymentMethods = append(doc.PaymentMethods, offer.PaymentMethod{Method: "77"}, offer.PaymentMethod{Method: "99"})
	doc.CompanyComponents[0].Intervals = doc.CompanyComponents[0].Intervals[:1]
	doc.Discounts[0].Period = &offer.ValidityPeriod{ValidUntil: "13/2024"}
	doc.ContactInformation = nil
	return doc
}

func TestRun_Deterministic(t *testing.T) {
	r := New()
	first, err := r.Run(context.Background(), brokenDocument(), offer.ActionInsert)
	require.NoError(t, err)
	require.False(t, first.Valid())

	for i := 0; i < 20; i++ {
		again, err := r.Run(context.Background(), brokenDocument(), offer.ActionInsert)
		require.NoError(t, err)
		if diff := cmp.Diff(first.Errors(), again.Errors()); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestRun_PhaseOrder(t *testing.T) {
	result, err := New().Run(context.Background(), brokenDocument(), offer.ActionInsert)
	require.NoError(t, err)

	want := []string{
		// structural checks, section order
		"identification.identityCode",
		"payment-methods.1.method",
		"discounts.0.period.validUntil",
		// cross-field
		"offer-details.singleOffer",
		// section rules
		"payment-methods.2.description",
		"company-components.0.intervals",
		"discounts.0.validity",
		// global
		"contact-information",
	}
	if diff := cmp.Diff(want, fieldsOf(result)); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"3 required, found 1"}, result.Messages("company-components.0.intervals"))
}

func TestRun_DeduplicatesAcrossKinds(t *testing.T) {
	reg := rules.NewRegistry()
	dup := func(ctx validation.Context) *validation.Error {
		err := validation.NewError(validation.CodeBusiness, "required", "identification", "identityCode")
		return &err
	}
	reg.MustRegister(rules.CrossField("dup", dup))
	reg.MustRegister(rules.Global("dup-global", func(validation.Context) []validation.Error {
		return []validation.Error{*dup(validation.Context{})}
	}))

	doc := &offer.Document{Identification: &offer.Identification{OfferCode: "X"}}
	result, err := New(WithRegistry(reg)).Run(context.Background(), doc, offer.ActionInsert)
	require.NoError(t, err)

	assert.Equal(t, []string{"required"}, result.Messages("identification.identityCode"))
	assert.Equal(t, validation.CodeSchema, result.Field("identification.identityCode")[0].Code)
}

func TestRun_PanickingRuleIsIsolated(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	reg := rules.NewRegistry()
	reg.MustRegister(
		rules.CrossField("explodes", func(validation.Context) *validation.Error {
			panic("boom")
		}),
		rules.CrossField("reports", func(validation.Context) *validation.Error {
			err := validation.NewError(validation.CodeBusiness, "still reported", "zones")
			return &err
		}),
	)

	result, err := New(WithRegistry(reg), WithSchemaLookup(nil), WithLogger(logger)).
		Run(context.Background(), &offer.Document{}, offer.ActionInsert)
	require.NoError(t, err)
	assert.Equal(t, []string{"zones"}, fieldsOf(result))
	assert.Contains(t, logs.String(), "rule=explodes")
	assert.Contains(t, logs.String(), "kind=cross-field")
}

func TestRun_PanickingSchemaIsIsolated(t *testing.T) {
	var logs bytes.Buffer
	lookup := schema.Map{
		"identification": schema.Func(func(context.Context, any) []validation.Error { panic("schema bug") }),
		"validity": schema.Func(func(context.Context, any) []validation.Error {
			return []validation.Error{validation.NewError(validation.CodeSchema, "bad", "validity", "startDate")}
		}),
	}
	reg := rules.NewRegistry()
	reg.MustRegister(rules.CrossField("noop", func(validation.Context) *validation.Error { return nil }))

	doc := &offer.Document{Identification: &offer.Identification{}, Validity: &offer.Validity{}}
	result, err := New(WithRegistry(reg), WithSchemaLookup(lookup), WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))).
		Run(context.Background(), doc, offer.ActionInsert)
	require.NoError(t, err)
	assert.Equal(t, []string{"validity.startDate"}, fieldsOf(result))
	assert.True(t, strings.Contains(logs.String(), "section=identification"))
}

func TestRun_InitializesEmptyRegistryOnce(t *testing.T) {
	var calls atomic.Int32
	reg := rules.NewRegistry()
	r := New(WithRegistry(reg), WithInitializer(func(reg *rules.Registry) error {
		calls.Add(1)
		reg.MustRegister(rules.CrossField("marker", func(validation.Context) *validation.Error { return nil }))
		return nil
	}))

	for i := 0; i < 3; i++ {
		_, err := r.Run(context.Background(), &offer.Document{}, offer.ActionInsert)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, reg.Populated())
}

func TestRun_SchemasMemoizedPerRunner(t *testing.T) {
	var mu sync.Mutex
	calls := map[string]int{}
	base := schema.NewStructLookup()
	lookup := schema.LookupFunc(func(section string) (schema.Schema, bool) {
		mu.Lock()
		calls[section]++
		mu.Unlock()
		return base.Schema(section)
	})

	reg := rules.NewRegistry()
	require.NoError(t, business.Register(reg))
	before := map[rules.Kind]int{}
	for _, kind := range rules.Kinds {
		before[kind] = reg.Len(kind)
	}

	doc := testsupport.ElectricityOffer()
	sections := len(doc.PresentSections())
	for i := 0; i < 2; i++ {
		r := New(WithRegistry(reg), WithSchemaLookup(lookup))
		for j := 0; j < 5; j++ {
			result, err := r.Run(context.Background(), doc, offer.ActionInsert)
			require.NoError(t, err)
			require.True(t, result.Valid(), "%v", result.Errors())
		}
	}

	assert.Len(t, calls, sections)
	for section, n := range calls {
		assert.Equal(t, 2, n, "lookups for %s", section)
	}
	for _, kind := range rules.Kinds {
		assert.Equal(t, before[kind], reg.Len(kind), "rules of kind %s", kind)
	}

	filled := false
	_, err := rules.CachedSchema(reg, string(offer.SectionIdentification), func() (cachedSchema, error) {
		filled = true
		return cachedSchema{}, nil
	})
	require.NoError(t, err)
	assert.True(t, filled, "shared registry should hold no schema entries")
}

func TestRun_InitializerError(t *testing.T) {
	r := New(WithRegistry(rules.NewRegistry()), WithInitializer(func(*rules.Registry) error {
		return errors.New("nope")
	}))
	_, err := r.Run(context.Background(), &offer.Document{}, offer.ActionInsert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestRun_Errors(t *testing.T) {
	r := New()
	_, err := r.Run(context.Background(), nil, offer.ActionInsert)
	assert.ErrorIs(t, err, ErrNilDocument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx, testsupport.ElectricityOffer(), offer.ActionInsert)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_UnknownSchemaSkipped(t *testing.T) {
	r := New(WithSchemaLookup(schema.Map{}))
	doc := testsupport.ElectricityOffer()
	doc.Identification.IdentityCode = "BAD"

	result, err := r.Run(context.Background(), doc, offer.ActionInsert)
	require.NoError(t, err)
	assert.True(t, result.Valid(), "%v", result.Errors())
}

func TestValidateSection_ScopesFindings(t *testing.T) {
	r := New()
	doc := testsupport.ElectricityOffer()
	doc.OfferDetails.SingleOffer = ""

	discounts := []offer.Discount{doc.Discounts[0], doc.Discounts[0]}
	discounts[1].Validity = ""

	result, err := r.ValidateSection(context.Background(), offer.SectionDiscounts, discounts, doc, offer.ActionInsert)
	require.NoError(t, err)
	assert.Equal(t, []string{"discounts.1.validity"}, fieldsOf(result))
	assert.Len(t, doc.Discounts, 1, "caller document must not change")

	result, err = r.ValidateSection(context.Background(), offer.SectionOfferDetails, doc.OfferDetails, doc, offer.ActionInsert)
	require.NoError(t, err)
	assert.Equal(t, []string{"offer-details.singleOffer"}, fieldsOf(result))
}

func TestValidateSection_SchemaOverride(t *testing.T) {
	lookup := schema.Chain(schema.Map{
		"strict-zones": schema.Func(func(context.Context, any) []validation.Error {
			return []validation.Error{validation.NewError(validation.CodeSchema, "strict", "zones")}
		}),
	}, schema.NewStructLookup())

	r := New(WithSchemaLookup(lookup))
	doc := testsupport.ElectricityOffer()

	result, err := r.ValidateSection(context.Background(), offer.SectionZones, doc.Zones, doc, offer.ActionInsert, WithSchemaName("strict-zones"))
	require.NoError(t, err)
	assert.Equal(t, []string{"strict"}, result.Messages("zones"))

	result, err = r.ValidateSection(context.Background(), offer.SectionZones, doc.Zones, doc, offer.ActionInsert, WithSchemaName("missing"))
	require.NoError(t, err)
	assert.True(t, result.Valid())

	_, err = r.ValidateSection(context.Background(), "bogus", nil, doc, offer.ActionInsert)
	assert.Error(t, err)
}
