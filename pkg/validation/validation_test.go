package validation

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-offergen/pkg/offer"
)

func TestNewResult_DedupPreservesFirstSeen(t *testing.T) {
	a := NewError(CodeBusiness, "required", "validity", "startDate")
	b := NewError(CodeSchema, "too long", "offer-details", "name")
	dup := NewError(CodeSchema, "required", "validity", "startDate")

	result := NewResult([]Error{a, b}, []Error{dup, {Field: "x", Message: "  "}})
	if result.Valid() {
		t.Fatalf("expected invalid result")
	}

	want := []Error{a, b}
	if diff := cmp.Diff(want, result.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNewResult_Idempotent(t *testing.T) {
	errs := []Error{
		NewError(CodeBusiness, "one", "zones"),
		NewError(CodeBusiness, "one", "zones"),
		NewError(CodeBusiness, "two", "zones"),
	}
	once := NewResult(errs)
	twice := NewResult(once.Errors())
	if diff := cmp.Diff(once.Errors(), twice.Errors()); diff != "" {
		t.Fatalf("dedup not idempotent (-once +twice):\n%s", diff)
	}
}

func TestResult_EmptyIsValid(t *testing.T) {
	result := NewResult(nil, []Error{})
	if !result.Valid() || result.Len() != 0 {
		t.Fatalf("expected valid empty result, got %+v", result.Errors())
	}
}

func TestResult_BySection(t *testing.T) {
	result := NewResult([]Error{
		NewError(CodeBusiness, "a", "discounts", "0", "name"),
		NewError(CodeBusiness, "b", "zones"),
		NewError(CodeBusiness, "c", "discounts", "1", "name"),
	})
	grouped := result.BySection()
	if len(grouped["discounts"]) != 2 || len(grouped["zones"]) != 1 {
		t.Fatalf("unexpected grouping: %+v", grouped)
	}
	if grouped["discounts"][1].Message != "c" {
		t.Fatalf("expected order preserved, got %+v", grouped["discounts"])
	}
}

func TestResult_JSONShape(t *testing.T) {
	raw, err := json.Marshal(NewResult())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"isValid":true,"errors":[]}` {
		t.Fatalf("unexpected payload: %s", raw)
	}

	var restored Result
	if err := json.Unmarshal([]byte(`{"isValid":true,"errors":[{"field":"zones","message":"bad"}]}`), &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restored.Valid() {
		t.Fatalf("expected validity recomputed from errors")
	}
}

func TestAtField_SplitsPath(t *testing.T) {
	err := AtField(CodeEnum, "Offerta.MetodoPagamento[1].MODALITA_PAGAMENTO", "bad")
	if err.Section() != "Offerta" || len(err.Path) != 3 {
		t.Fatalf("unexpected path: %+v", err.Path)
	}
}

func TestNewContext_DerivesDiscriminators(t *testing.T) {
	doc := &offer.Document{OfferDetails: &offer.OfferDetails{
		MarketType: offer.MarketDualFuel,
		OfferType:  offer.OfferFlat,
	}}
	ctx := NewContext(doc, offer.ActionInsert)
	if ctx.Market != offer.MarketDualFuel || ctx.OfferType != offer.OfferFlat {
		t.Fatalf("unexpected context: %+v", ctx)
	}
	if !ctx.IsElectricity() || !ctx.IsGas() {
		t.Fatalf("expected dual fuel to cover both markets")
	}
	updated := ctx.WithAction(offer.ActionUpdate)
	if ctx.Action != offer.ActionInsert || updated.Action != offer.ActionUpdate {
		t.Fatalf("expected WithAction to derive a copy")
	}
}
