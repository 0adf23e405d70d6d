// Package catalog defines the read-only work-type catalog.
//
// The catalog maps work-type codes to their display label, message prefix
// and destination Slack channel. It is built once at startup from the
// built-in defaults plus any configured channel overrides and is never
// mutated afterwards, so it is safe for unsynchronized concurrent reads.
//
// The catalog is injected into the modal builder and submission handler
// rather than read from package globals, which lets tests substitute a
// small fixed catalog.
package catalog

// WorkType describes a single work-type entry.
type WorkType struct {
	Code      string // stable code submitted by the modal select
	Label     string // short display label, also the message prefix stem
	ChannelID string // destination channel for work requests of this type
}

// Prefix returns the message prefix for this work type, e.g. "UI-".
// The prefix is concatenated directly onto the request title.
func (w WorkType) Prefix() string {
	return w.Label + "-"
}

// defaultWorkTypes lists every supported work type in display order.
// Channel IDs are placeholders overridable via configuration.
var defaultWorkTypes = []WorkType{
	{Code: "client_task", Label: "Client", ChannelID: "C09C4S28412"},
	{Code: "planning_task", Label: "Planning", ChannelID: "C09C4S28412"},
	{Code: "qa_task", Label: "QA", ChannelID: "C09C4S28412"},
	{Code: "character_task", Label: "Character", ChannelID: "C09C4S28412"},
	{Code: "background_task", Label: "Background", ChannelID: "C09C4S28412"},
	{Code: "concept_task", Label: "Concept", ChannelID: "C09C4S28412"},
	{Code: "animation_task", Label: "Animation", ChannelID: "C09C4S28412"},
	{Code: "effect_task", Label: "VFX", ChannelID: "C09C4S28412"},
	{Code: "art_task", Label: "Art", ChannelID: "C09C4S28412"},
	{Code: "server_task", Label: "Server", ChannelID: "C09C4S28412"},
	{Code: "ta_task", Label: "TA", ChannelID: "C09C4S28412"},
	{Code: "test_task", Label: "Test", ChannelID: "C09C4S28412"},
	{Code: "ui_task", Label: "UI", ChannelID: "C09C4S28412"},
}

// Catalog is the immutable work-type lookup table.
type Catalog struct {
	types          []WorkType
	byCode         map[string]WorkType
	defaultChannel string
}

// New builds a catalog from the built-in work types, applying per-code
// channel overrides. defaultChannel is the fallback destination for
// unrecognized codes; when empty, the first work type's channel is used.
func New(channelOverrides map[string]string, defaultChannel string) *Catalog {
	types := make([]WorkType, len(defaultWorkTypes))
	copy(types, defaultWorkTypes)

	byCode := make(map[string]WorkType, len(types))
	for i, wt := range types {
		if ch, ok := channelOverrides[wt.Code]; ok && ch != "" {
			types[i].ChannelID = ch
		}
		byCode[types[i].Code] = types[i]
	}

	if defaultChannel == "" {
		defaultChannel = types[0].ChannelID
	}

	return &Catalog{
		types:          types,
		byCode:         byCode,
		defaultChannel: defaultChannel,
	}
}

// NewFromTypes builds a catalog from an explicit work-type list.
// Intended for tests that need a small fixed catalog.
func NewFromTypes(types []WorkType, defaultChannel string) *Catalog {
	byCode := make(map[string]WorkType, len(types))
	for _, wt := range types {
		byCode[wt.Code] = wt
	}
	return &Catalog{
		types:          types,
		byCode:         byCode,
		defaultChannel: defaultChannel,
	}
}

// Types returns all work types in display order.
// Callers must not mutate the returned slice.
func (c *Catalog) Types() []WorkType {
	return c.types
}

// Len returns the number of work types in the catalog.
func (c *Catalog) Len() int {
	return len(c.types)
}

// Lookup returns the work type for code, and whether it exists.
func (c *Catalog) Lookup(code string) (WorkType, bool) {
	wt, ok := c.byCode[code]
	return wt, ok
}

// ChannelFor returns the destination channel for code. Codes absent from
// the catalog route to the configured default channel.
func (c *Catalog) ChannelFor(code string) string {
	if wt, ok := c.byCode[code]; ok {
		return wt.ChannelID
	}
	return c.defaultChannel
}

// PrefixFor returns the message prefix for code, or the empty string for
// codes absent from the catalog.
func (c *Catalog) PrefixFor(code string) string {
	if wt, ok := c.byCode[code]; ok {
		return wt.Prefix()
	}
	return ""
}

// DefaultChannel returns the fallback destination channel.
func (c *Catalog) DefaultChannel() string {
	return c.defaultChannel
}
