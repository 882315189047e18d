package parser

// Field is a canonical reservation field resolved from a column header.
type Field string

const (
	FieldRoom     Field = "room"
	FieldChannel  Field = "channel"
	FieldCheckIn  Field = "checkin"
	FieldCheckOut Field = "checkout"
	FieldRevenue  Field = "revenue"
)

// HeaderRules maps each canonical field to the ordered list of substrings a
// column header may contain, lower-cased. Exports arrive with English or
// Georgian headers depending on which channel manager produced them.
type HeaderRules map[Field][]string

// DefaultHeaderRules returns the header patterns seen across the known
// reservation exporters.
func DefaultHeaderRules() HeaderRules {
	return HeaderRules{
		FieldRoom: {
			"room", "ოთახ", "studio", "სტუდიო", "ნომერ", "number",
		},
		FieldChannel: {
			"channel", "წყარო", "source", "არხ", "platform",
		},
		FieldCheckIn: {
			"checkin", "check-in", "check in", "start", "დაწყება", "შესვლა",
		},
		FieldCheckOut: {
			"checkout", "check-out", "check out", "end", "დასრულება", "გასვლა",
		},
		FieldRevenue: {
			"revenue", "შემოსავალ", "price", "ფას", "amount", "თანხა", "total",
		},
	}
}
