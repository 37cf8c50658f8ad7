package domain

// CommandType identifies the kind of request being answered. Each type
// maps to a fixed set of collections searched for context.
type CommandType string

const (
	// CommandAnalysis is a doctrinal analysis of a statement.
	CommandAnalysis CommandType = "analysis"

	// CommandDigest is a daily digest generation request.
	CommandDigest CommandType = "digest"

	// CommandLookup is a knowledge lookup against the lore archives.
	CommandLookup CommandType = "lookup"

	// CommandQuestion is a free-form question searched across
	// every collection, user-contributed knowledge included.
	CommandQuestion CommandType = "question"

	// CommandGeneral is the default when nothing more specific applies.
	CommandGeneral CommandType = "general"
)

// Collection names used by the command mapping.
const (
	CollectionDoctrine = "doctrine"
	CollectionDigests  = "digests"
	CollectionLore     = "lore"
)

// commandCollections is the static table mapping each command type to
// the collections it retrieves context from.
var commandCollections = map[CommandType][]string{
	CommandAnalysis: {CollectionDoctrine},
	CommandDigest:   {CollectionDigests},
	CommandLookup:   {CollectionLore, DefaultCollection},
	CommandQuestion: {CollectionLore, CollectionDoctrine, CollectionDigests, DefaultCollection},
	CommandGeneral:  {DefaultCollection},
}

// CollectionsFor returns the collections searched for a command type.
// Unknown types fall back to the general mapping.
func CollectionsFor(t CommandType) []string {
	if cols, ok := commandCollections[t]; ok {
		out := make([]string, len(cols))
		copy(out, cols)
		return out
	}
	return CollectionsFor(CommandGeneral)
}

// ParseCommandType maps a string to a known command type, falling back
// to CommandGeneral for anything unrecognised.
func ParseCommandType(s string) CommandType {
	switch CommandType(s) {
	case CommandAnalysis, CommandDigest, CommandLookup, CommandQuestion, CommandGeneral:
		return CommandType(s)
	default:
		return CommandGeneral
	}
}
