package models

const (
	ColumnName     = "name"
	ColumnAddress  = "address"
	ColumnCategory = "category"
	ColumnHours    = "hours"
	ColumnLat      = "lat"
	ColumnLng      = "lng"
	ColumnRating   = "rating"
	ColumnPrice    = "price"
	ColumnAvgBill  = "avg_bill"
	ColumnChain    = "chain"
	ColumnDistrict = "district"
	ColumnSeats    = "seats"

	ColumnStreet          = "street"
	ColumnIs247           = "is_24_7"
	ColumnMiddleAvgBill   = "middle_avg_bill"
	ColumnMiddleCoffeeCup = "middle_coffee_cup"

	// AllDayHours is the only schedule value that marks a venue as open 24/7.
	AllDayHours = "ежедневно, круглосуточно"

	OutputFormatConsole  = "console"
	OutputFormatCSV      = "csv"
	OutputFormatJSON     = "json"
	OutputFormatParquet  = "parquet"
	OutputFormatXLSX     = "xlsx"
	OutputFormatSQLite   = "sqlite"
	OutputFormatPostgres = "postgres"
	OutputFormatKafka    = "kafka"

	DestinationLocal = "local"
	DestinationS3    = "s3"

	ReportFormatText = "text"
	ReportFormatJSON = "json"
	ReportFormatXLSX = "xlsx"

	// ReportSourceInput cleans the input CSV; OutputFormatSQLite and
	// OutputFormatPostgres read a table stored by an earlier clean run.
	ReportSourceInput = "input"
)

// InputColumns lists the columns the loader requires, in dataset order.
var InputColumns = []string{
	ColumnName, ColumnAddress, ColumnCategory, ColumnHours,
	ColumnLat, ColumnLng, ColumnRating, ColumnPrice,
	ColumnAvgBill, ColumnChain, ColumnDistrict, ColumnSeats,
}

// OutputColumns is InputColumns followed by the derived columns.
var OutputColumns = append(append([]string{}, InputColumns...),
	ColumnStreet, ColumnIs247, ColumnMiddleAvgBill, ColumnMiddleCoffeeCup,
)
