package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housing-dashboard/config"
	"housing-dashboard/models"
	"housing-dashboard/services"
	"housing-dashboard/utils"
)

const sampleCSV = "Id,MSSubClass,MSZoning,LotArea,LotConfig,BldgType,OverallCond,YearBuilt,YearRemodAdd,Exterior1st,BsmtFinSF2,TotalBsmtSF,SalePrice\n" +
	"1,60,RL,8450,Inside,1Fam,5,2003,2003,VinylSd,0,856,208500\n" +
	"2,20,RL,9600,FR2,1Fam,8,1976,1976,MetalSd,0,1262,181500\n" +
	"3,60,RM,11250,Inside,2fmCon,5,2001,2002,\"Wd Sdng\",0,920,NA\n"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCSVSourceLoad(t *testing.T) {
	src := NewCSVSource(writeFile(t, "houses.csv", sampleCSV), utils.NewNopLogger())
	defer src.Close()

	table, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"RL", "RM"}, table.Distinct(models.ColMSZoning))
	assert.Equal(t, []string{"VinylSd", "MetalSd", "Wd Sdng"}, table.All().Texts(models.ColExterior1st))
}

func TestCSVSourceErrors(t *testing.T) {
	logger := utils.NewNopLogger()

	_, err := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"), logger).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewCSVSource(writeFile(t, "empty.csv", ""), logger).Load(context.Background())
	assert.ErrorContains(t, err, "empty file")

	bad := strings.Replace(sampleCSV, "8450", "big", 1)
	_, err = NewCSVSource(writeFile(t, "bad.csv", bad), logger).Load(context.Background())
	assert.ErrorContains(t, err, "LotArea")

	noPrice := strings.Replace(sampleCSV, ",SalePrice", ",Price", 1)
	_, err = NewCSVSource(writeFile(t, "noprice.csv", noPrice), logger).Load(context.Background())
	assert.ErrorContains(t, err, "SalePrice")
}

func TestCSVWriterRoundTrip(t *testing.T) {
	header, rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	table, err := services.NewCleaner(utils.NewNopLogger()).Clean(header, rows)
	require.NoError(t, err)
	view := services.FilterTable(table, models.Selection{Zoning: "RL"})

	var buf bytes.Buffer
	w := NewCSVStreamWriter(&buf)
	require.NoError(t, w.Write(view))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "header plus the two RL rows")
	assert.Equal(t, strings.Join(table.Schema().Names(), ","), lines[0])
	assert.False(t, strings.HasPrefix(lines[0], "Id,"), "Id column is not exported")

	header2, rows2, err := ReadCSV(strings.NewReader(buf.String()))
	require.NoError(t, err)
	again, err := services.NewCleaner(utils.NewNopLogger()).Clean(header2, rows2)
	require.NoError(t, err)
	if diff := cmp.Diff(view.Numbers(models.ColSalePrice), again.All().Numbers(models.ColSalePrice)); diff != "" {
		t.Errorf("sale prices changed (-want +got):\n%s", diff)
	}
}

func TestCSVWriterFile(t *testing.T) {
	header, rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	table, err := services.NewCleaner(utils.NewNopLogger()).Clean(header, rows)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(table.All()))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// the missing price of the last row is written empty
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(data)), ",920,"))
}

func TestInsertSQL(t *testing.T) {
	q := insertSQL(2)
	n := len(models.HousingColumns)
	assert.True(t, strings.HasPrefix(q, "INSERT INTO housing (mssubclass, mszoning,"))
	assert.Contains(t, q, "($1,")
	assert.Contains(t, q, ",$"+strconv.Itoa(2*n)+")")
	assert.NotContains(t, q, "$"+strconv.Itoa(2*n+1))
}

func TestCreateTableSQL(t *testing.T) {
	ddl := createTableSQL()
	assert.Contains(t, ddl, "row_num SERIAL PRIMARY KEY")
	assert.Contains(t, ddl, "saleprice DOUBLE PRECISION")
	assert.Contains(t, ddl, "bldgtype TEXT")
}

func TestOpen(t *testing.T) {
	logger := utils.NewNopLogger()

	src, err := Open(context.Background(), &config.Config{DatasetSource: config.SourceCSV, DatasetPath: "x.csv"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &CSVSource{}, src)

	_, err = Open(context.Background(), &config.Config{DatasetSource: "xlsx"}, logger)
	assert.ErrorContains(t, err, "unknown dataset source")
}
