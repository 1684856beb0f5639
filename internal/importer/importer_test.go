package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementJSON = `[
	{"date": "2024-01-05", "description": "SQUARE INC DEPOSIT", "amount": "5234.17", "type": "credit"},
	{"date": "2024-01-08", "description": "ONDECK DAILY PMT", "amount": 425, "type": "debit"},
	{"date": "2024-01-09", "description": "OFFICE DEPOT", "amount": -82.10},
	{"date": "01/10/2024", "description": "STRIPE TRANSFER", "amount": 2500},
	{"date": "2024-13-40", "description": "BAD DATE", "amount": 10},
	{"date": "2024-01-11", "description": "BAD TYPE", "amount": 10, "type": "refund"},
	{"description": "NO DATE", "amount": 10}
]`

const minimalOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>555
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240105120000[0:GMT]
<TRNAMT>1200.00
<FITID>1
<NAME>SHOPIFY PAYOUT
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadJSON(t *testing.T) {
	txns, dataErrs, err := ReadJSON(strings.NewReader(statementJSON))
	require.NoError(t, err)

	require.Len(t, txns, 5)
	tests := []struct {
		description string
		amount      string
		direction   model.Direction
	}{
		{"SQUARE INC DEPOSIT", "5234.17", model.DirectionCredit},
		{"ONDECK DAILY PMT", "425.00", model.DirectionDebit},
		{"OFFICE DEPOT", "82.10", model.DirectionDebit},
		{"STRIPE TRANSFER", "2500.00", model.DirectionCredit},
		{"NO DATE", "10.00", model.DirectionCredit},
	}
	for i, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.description, txns[i].Description)
			assert.Equal(t, tt.amount, txns[i].Amount.StringFixed(2))
			assert.Equal(t, tt.direction, txns[i].Direction)
			assert.NotEmpty(t, txns[i].Hash)
		})
	}
	assert.Equal(t, "2024-01-10", txns[3].Date.Format("2006-01-02"))
	assert.True(t, txns[4].Date.IsZero())

	require.Len(t, dataErrs, 2)
	assert.Equal(t, 4, dataErrs[0].Index)
	assert.Equal(t, 5, dataErrs[1].Index)
	assert.ErrorIs(t, dataErrs[0], common.ErrInvalidTransaction)
}

func TestReadJSONRejectsNonArray(t *testing.T) {
	_, _, err := ReadJSON(strings.NewReader(`{"date": "2024-01-01"}`))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "jan.json", statementJSON)
	dupPath := writeFile(t, dir, "jan-copy.JSON", statementJSON)
	ofxPath := writeFile(t, dir, "jan.qfx", minimalOFX)

	res, err := New().Import(context.Background(), jsonPath, dupPath, ofxPath)
	require.NoError(t, err)

	assert.Len(t, res.Transactions, 6)
	require.Len(t, res.Files, 3)
	assert.Equal(t, FileResult{Path: jsonPath, Found: 5, Added: 5}, res.Files[0])
	assert.Equal(t, FileResult{Path: dupPath, Found: 5, Duplicates: 5}, res.Files[1])
	assert.Equal(t, FileResult{Path: ofxPath, Found: 1, Added: 1}, res.Files[2])
	assert.Len(t, res.Errors, 4)
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		wantErr error
		name    string
		path    string
	}{
		{name: "unsupported extension", path: writeFile(t, dir, "statement.csv", "date,amount"), wantErr: ErrUnsupportedFormat},
		{name: "missing file", path: filepath.Join(dir, "missing.json"), wantErr: os.ErrNotExist},
		{name: "bad ofx", path: writeFile(t, dir, "bad.ofx", "not ofx")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Import(context.Background(), tt.path)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", "[]")
	b := writeFile(t, dir, "b.json", "[]")

	files, err := ExpandPaths([]string{filepath.Join(dir, "*.json")})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)

	_, err = ExpandPaths([]string{filepath.Join(dir, "nothing-*.ofx")})
	assert.Error(t, err)
}
