package domain

// Column names a column of the player-season input table.
// Values match the header spelling used by the season export.
type Column string

// String returns the header spelling of the column.
func (c Column) String() string { return string(c) }

// Identity columns.
const (
	ColName Column = "Name"
	ColTeam Column = "Team"
	ColYear Column = "Year"
)

// Playing-time columns.
const (
	ColPA     Column = "PA"
	ColDHPA   Column = "DH_PA"
	ColIP     Column = "IP"
	ColStarts Column = "P_GS"

	ColCatcherInn     Column = "C_Inn"
	ColFirstBaseInn   Column = "FirstB_Inn"
	ColSecondBaseInn  Column = "SecB_Inn"
	ColThirdBaseInn   Column = "ThirdB_Inn"
	ColShortstopInn   Column = "SS_Inn"
	ColLeftFieldInn   Column = "LF_Inn"
	ColCenterFieldInn Column = "CF_Inn"
	ColRightFieldInn  Column = "RF_Inn"
)

// Rate metric columns.
const (
	ColWOBA  Column = "wOBA"
	ColXWOBA Column = "xwOBA"
	ColERA   Column = "ERA"
	ColFIP   Column = "FIP"
	ColXFIP  Column = "xFIP"
)

// NumericColumns lists every numeric column in input order.
var NumericColumns = []Column{
	ColPA, ColDHPA,
	ColCatcherInn, ColFirstBaseInn, ColSecondBaseInn, ColThirdBaseInn,
	ColShortstopInn, ColLeftFieldInn, ColCenterFieldInn, ColRightFieldInn,
	ColIP, ColStarts,
	ColWOBA, ColXWOBA, ColERA, ColFIP, ColXFIP,
}

// RequiredColumns returns every column a season table must provide.
// A source lacking any of them cannot be aggregated.
func RequiredColumns() []Column {
	cols := make([]Column, 0, len(NumericColumns)+3)
	cols = append(cols, ColName, ColTeam, ColYear)
	return append(cols, NumericColumns...)
}
