package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
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
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240105120000[0:GMT]
<TRNAMT>5234.17
<FITID>2024010501
<NAME>SQUARE INC DEPOSIT
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240108120000[0:GMT]
<TRNAMT>-425.00
<FITID>2024010801
<NAME>ONDECK CAPITAL
<MEMO>DAILY PMT
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>2500.00
<FITID>2024011001
<NAME>ACH CREDIT
<MEMO>STRIPE TRANSFER
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
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

const sampleCreditCardOFX = `OFXHEADER:100
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
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM REFUND
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 4,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "leading blank lines",
			ofxData:       "\n\n  " + sampleBankOFX,
			expectedCount: 4,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, err := NewParser().ParseFile(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, transactions, tt.expectedCount)
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	transactions, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 4)

	tests := []struct {
		id          string
		description string
		amount      string
		direction   model.Direction
		checkNumber string
	}{
		{"2024010501", "SQUARE INC DEPOSIT", "5234.17", model.DirectionCredit, ""},
		{"2024010801", "ONDECK CAPITAL DAILY PMT", "425.00", model.DirectionDebit, ""},
		{"2024011001", "STRIPE TRANSFER", "2500.00", model.DirectionCredit, ""},
		{"2024012501", "CHECK #1234", "500.00", model.DirectionDebit, "1234"},
	}

	for i, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tx := transactions[i]
			assert.Equal(t, tt.id, tx.ID)
			assert.Equal(t, tt.description, tx.Description)
			assert.Equal(t, tt.amount, tx.Amount.StringFixed(2))
			assert.Equal(t, tt.direction, tx.Direction)
			assert.Equal(t, tt.checkNumber, tx.CheckNumber)
			assert.Equal(t, "1234567890", tx.AccountID)
			assert.NotEmpty(t, tx.Hash)
		})
	}

	// Compare just the date components, ignoring timezone
	first := transactions[0].Date
	assert.Equal(t, 2024, first.Year())
	assert.Equal(t, time.January, first.Month())
	assert.Equal(t, 5, first.Day())
}

func TestParseCreditCardTransactions(t *testing.T) {
	transactions, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "4111111111111111", transactions[0].AccountID)
	assert.True(t, transactions[0].IsDebit())
	assert.Equal(t, "45.99", transactions[0].Amount.StringFixed(2))
	assert.True(t, transactions[1].IsCredit())
	assert.Equal(t, "15.00", transactions[1].Amount.StringFixed(2))
}

func TestDescription(t *testing.T) {
	tests := []struct {
		payee    *ofxgo.Payee
		name     string
		txName   string
		memo     string
		expected string
	}{
		{name: "name only", txName: "SQUARE INC DEPOSIT", expected: "SQUARE INC DEPOSIT"},
		{name: "memo appended", txName: "ONDECK CAPITAL", memo: "DAILY PMT", expected: "ONDECK CAPITAL DAILY PMT"},
		{name: "generic name replaced", txName: "Deposit", memo: "SHOPIFY PAYOUT", expected: "SHOPIFY PAYOUT"},
		{name: "memo already in name", txName: "STRIPE TRANSFER ST-123", memo: "stripe transfer", expected: "STRIPE TRANSFER ST-123"},
		{name: "payee fallback", payee: &ofxgo.Payee{Name: "TOAST INC"}, expected: "TOAST INC"},
		{name: "trims whitespace", txName: "  AMAZON.COM  ", expected: "AMAZON.COM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name:  ofxgo.String(tt.txName),
				Memo:  ofxgo.String(tt.memo),
				Payee: tt.payee,
			}
			assert.Equal(t, tt.expected, description(tx))
		})
	}
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser()

	accounts, err := parser.GetAccounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, accounts)

	accounts, err = parser.GetAccounts(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, accounts)
}
