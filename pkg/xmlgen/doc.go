// Package xmlgen maps an offer document onto the ordered Offerta element tree
// and encodes it as XML. Element order is fixed by the target layout, not by
// the input; optional elements are omitted when their source is absent.
package xmlgen
