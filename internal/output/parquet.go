package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chrisdamba/foodvenues/internal/cloudwriter"
	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

const parquetFile = "venues.parquet"

// ParquetVenue is the parquet row layout of an enriched venue.
type ParquetVenue struct {
	Name            string   `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Address         string   `parquet:"name=address, type=BYTE_ARRAY, convertedtype=UTF8"`
	Category        string   `parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Hours           *string  `parquet:"name=hours, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Lat             float64  `parquet:"name=lat, type=DOUBLE"`
	Lng             float64  `parquet:"name=lng, type=DOUBLE"`
	Rating          float64  `parquet:"name=rating, type=DOUBLE"`
	Price           *string  `parquet:"name=price, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	AvgBill         *string  `parquet:"name=avg_bill, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Chain           int32    `parquet:"name=chain, type=INT32"`
	District        string   `parquet:"name=district, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Seats           *float64 `parquet:"name=seats, type=DOUBLE, repetitiontype=OPTIONAL"`
	Street          *string  `parquet:"name=street, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Is247           bool     `parquet:"name=is_24_7, type=BOOLEAN"`
	MiddleAvgBill   *float64 `parquet:"name=middle_avg_bill, type=DOUBLE, repetitiontype=OPTIONAL"`
	MiddleCoffeeCup *float64 `parquet:"name=middle_coffee_cup, type=DOUBLE, repetitiontype=OPTIONAL"`
}

func toParquet(v *models.EnrichedVenue) ParquetVenue {
	return ParquetVenue{
		Name:            v.Name,
		Address:         v.Address,
		Category:        v.Category,
		Hours:           v.Hours,
		Lat:             v.Lat,
		Lng:             v.Lng,
		Rating:          v.Rating,
		Price:           v.Price,
		AvgBill:         v.AvgBill,
		Chain:           int32(v.Chain),
		District:        v.District,
		Seats:           v.Seats,
		Street:          v.Street,
		Is247:           v.Is247,
		MiddleAvgBill:   v.MiddleAvgBill,
		MiddleCoffeeCup: v.MiddleCoffeeCup,
	}
}

type ParquetOutput struct {
	target fileTarget
}

func NewParquetOutput(basePath, folder string) *ParquetOutput {
	return &ParquetOutput{target: localTarget(basePath, folder)}
}

func (p *ParquetOutput) Path() string {
	return p.target.path(parquetFile)
}

func (p *ParquetOutput) WriteVenues(ctx context.Context, venues []models.EnrichedVenue) error {
	fw, err := p.createFile(ctx)
	if err != nil {
		return err
	}

	pw, err := writer.NewParquetWriter(fw, new(ParquetVenue), 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range venues {
		if err := pw.Write(toParquet(&venues[i])); err != nil {
			fw.Close()
			return fmt.Errorf("failed to write venue %d: %w", i, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return fw.Close()
}

func (p *ParquetOutput) createFile(ctx context.Context) (source.ParquetFile, error) {
	if p.target.isCloud() {
		key := cloudwriter.ObjectKey(p.target.folder, p.target.runID, parquetFile)
		cw, err := p.target.factory.NewWriter(ctx, p.target.bucket, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return NewCloudParquetFile(cw), nil
	}

	if err := os.MkdirAll(p.target.dir, os.ModePerm); err != nil {
		return nil, err
	}
	fw, err := local.NewLocalFileWriter(p.target.path(parquetFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	return fw, nil
}

func (p *ParquetOutput) Close() error {
	return nil
}

// CloudParquetFile adapts a write-only CloudWriter to source.ParquetFile.
// The parquet writer only appends, so reads and seeks from the end fail.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

func (c *CloudParquetFile) Open(string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	default:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read([]byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
