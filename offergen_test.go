package offergen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	offergen "github.com/goliatone/go-offergen"
	"github.com/goliatone/go-offergen/pkg/orchestrator"
	"github.com/goliatone/go-offergen/pkg/testsupport"
)

func TestFacade_RoundTrip(t *testing.T) {
	ctx := testsupport.Context()
	doc := testsupport.ElectricityOffer()

	result, err := offergen.Validate(ctx, doc, offergen.ActionInsert)
	require.NoError(t, err)
	assert.True(t, result.Valid())

	out, err := offergen.Generate(ctx, doc, offergen.ActionUpdate)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH12345678_AGGIORNAMENTO_WINTEROFFER2024.XML", out.FileName)
	assert.True(t, offergen.Check(out.XML).Valid())
}

func TestFacade_FileName(t *testing.T) {
	name, err := offergen.FileName("ABCDEFGH12345678", offergen.ActionInsert, "Winter Offer 2024!!")
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH12345678_INSERIMENTO_WINTEROFFER2024.XML", name)

	_, err = offergen.FileName("ABCDEFGH12345678", offergen.Action("delete"), "x")
	require.Error(t, err)
}

func TestFacade_SharesDefaultOrchestrator(t *testing.T) {
	first := offergen.DefaultOrchestrator()
	require.NotNil(t, first)
	assert.Same(t, first, offergen.DefaultOrchestrator())
	assert.Same(t, first.Runner(), offergen.DefaultOrchestrator().Runner())

	ctx := testsupport.Context()
	for i := 0; i < 3; i++ {
		result, err := offergen.Validate(ctx, testsupport.GasOffer(), offergen.ActionInsert)
		require.NoError(t, err)
		assert.True(t, result.Valid(), "%v", result.Errors())
	}
	assert.Same(t, first, offergen.DefaultOrchestrator())

	custom := offergen.NewOrchestrator(orchestrator.WithSelfCheck(false))
	assert.NotSame(t, first, custom)
	_, err := offergen.Generate(ctx, testsupport.GasOffer(), offergen.ActionInsert, orchestrator.WithSelfCheck(false))
	require.NoError(t, err)
}
