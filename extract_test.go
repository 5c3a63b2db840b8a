package brokerimport

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDetectProfile(t *testing.T) {
	profiles := BuiltinProfiles()
	testCases := []struct {
		fixture string
		want    string
	}{
		{fixture: "nordbank_buy.txt", want: "Nordbank"},
		{fixture: "atlantic_sell.txt", want: "Atlantic Brokers"},
		{fixture: "helvetia_buy.txt", want: "Helvetia Trust"},
	}
	for _, tc := range testCases {
		t.Run(tc.fixture, func(t *testing.T) {
			doc := readFixture(t, tc.fixture)
			p, err := DetectProfile(profiles, doc.Text)
			if err != nil {
				t.Fatalf("DetectProfile failed: %v", err)
			}
			if p.Name != tc.want {
				t.Errorf("DetectProfile = %s, want %s", p.Name, tc.want)
			}
		})
	}

	if _, err := DetectProfile(profiles, "To whom it may concern"); err == nil {
		t.Error("DetectProfile should fail on an unknown institution")
	}
}

func TestExtractBuy(t *testing.T) {
	doc := readFixture(t, "nordbank_buy.txt")
	reg := NewRegistry()
	items, errs := NewExtractor(Nordbank()).Extract(doc, reg)
	if len(errs) != 0 {
		t.Fatalf("unexpected block errors: %v", errs)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want security + trade", len(items))
	}

	sec, ok := items[0].(*SecurityItem)
	if !ok {
		t.Fatalf("items[0] is %T, want the new security first", items[0])
	}
	if sec.Security.ISIN() != "DE0007236101" || sec.Security.WKN() != "723610" {
		t.Errorf("security identifiers = %s/%s", sec.Security.ISIN(), sec.Security.WKN())
	}
	if sec.Security.Currency() != "EUR" {
		t.Errorf("security currency = %s, want the booking currency EUR", sec.Security.Currency())
	}

	trade, ok := items[1].(*BuySellItem)
	if !ok {
		t.Fatalf("items[1] is %T, want a paired trade", items[1])
	}
	e := trade.Entry
	if e.Account.Type != TxBuy {
		t.Errorf("type = %s, want BUY", e.Account.Type)
	}
	if want := time.Date(2024, time.March, 15, 12, 5, 1, 0, time.UTC); !e.Date().Equal(want) {
		t.Errorf("date = %s, want %s", e.Date(), want)
	}
	if !e.Account.Shares.Equal(Q(3)) {
		t.Errorf("shares = %s, want 3", e.Account.Shares)
	}
	if !e.Account.GrossValue().Equal(M(1800, "EUR")) {
		t.Errorf("gross = %s, want 1800 EUR", e.Account.GrossValue())
	}
	if !e.MonetaryAmount().Equal(M(1800, "EUR")) {
		t.Errorf("amount = %s, want 1800 EUR", e.MonetaryAmount())
	}
	if e.Account.Source != doc.Name {
		t.Errorf("source = %q, want %q", e.Account.Source, doc.Name)
	}
	if reg.Len() != 1 {
		t.Errorf("registry holds %d securities, want 1", reg.Len())
	}
}

func TestExtractDividendForex(t *testing.T) {
	doc := readFixture(t, "nordbank_dividend.txt")
	reg := NewRegistry()
	items, errs := NewExtractor(Nordbank()).Extract(doc, reg)
	if len(errs) != 0 {
		t.Fatalf("unexpected block errors: %v", errs)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want security + dividend", len(items))
	}

	sec := items[0].(*SecurityItem).Security
	if sec.Currency() != "USD" {
		t.Errorf("security currency = %s, want the natively quoted USD", sec.Currency())
	}

	tx := items[1].(*TransactionItem).Transaction
	if tx.Type != TxDividend {
		t.Errorf("type = %s, want DIVIDEND", tx.Type)
	}
	if !tx.MonetaryAmount().Equal(M(7.51, "EUR")) {
		t.Errorf("amount = %s, want the net 7.51 EUR", tx.MonetaryAmount())
	}
	if !tx.GrossValue().Equal(M(10.35, "EUR")) {
		t.Errorf("gross = %s, want 10.35 EUR", tx.GrossValue())
	}
	if !tx.TaxTotal().Equal(M(2.84, "EUR")) {
		t.Errorf("tax total = %s, want 2.84 EUR", tx.TaxTotal())
	}

	gross, _ := grossUnit(tx.Units)
	if !gross.HasForex() {
		t.Fatal("gross unit lost the foreign counterpart")
	}
	if !gross.Forex.Equal(M(12.39, "USD")) {
		t.Errorf("forex = %s, want 12.39 USD", gross.Forex)
	}
	if !gross.Rate.Equal(decimal.NewFromFloat(1.1971)) {
		t.Errorf("rate = %s, want 1.1971", gross.Rate)
	}
}

func TestExtractCancellation(t *testing.T) {
	storno := readFixture(t, "nordbank_buy_storno.txt")
	reg := NewRegistry()
	items, errs := NewExtractor(Nordbank()).Extract(storno, reg)
	if len(errs) != 0 {
		t.Fatalf("unexpected block errors: %v", errs)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want exactly one failed item", len(items))
	}
	if !items[0].Failed() {
		t.Fatal("cancellation item not marked failed")
	}
	if items[0].FailureMessage() != MsgCancellationUnsupported {
		t.Errorf("message = %q", items[0].FailureMessage())
	}
	if reg.Len() != 0 {
		t.Error("a cancelled block must not grow the registry")
	}

	// the failed item carries the same record the un-cancelled document yields.
	ok := readFixture(t, "nordbank_buy.txt")
	okItems, _ := NewExtractor(Nordbank()).Extract(ok, NewRegistry())
	want := okItems[1].(*BuySellItem).Entry
	got := items[0].(*BuySellItem).Entry
	if !got.Date().Equal(want.Date()) || !got.Account.Shares.Equal(want.Account.Shares) ||
		!got.MonetaryAmount().Equal(want.MonetaryAmount()) {
		t.Error("cancelled record disagrees with its un-cancelled equivalent")
	}
	if !reflect.DeepEqual(got.Account.Security, want.Account.Security) {
		t.Error("cancelled record names a different security")
	}
}

func TestExtractStatementPartialFailure(t *testing.T) {
	doc := readFixture(t, "nordbank_statement.txt")
	items, errs := NewExtractor(Nordbank()).Extract(doc, NewRegistry())

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3 well-formed blocks imported", len(items))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want exactly the malformed fee block: %v", len(errs), errs)
	}

	var blockErr *BlockError
	if !errors.As(errs[0], &blockErr) {
		t.Fatalf("error is %T, want *BlockError", errs[0])
	}
	if blockErr.Type != BlockFee {
		t.Errorf("failing block type = %s, want fee", blockErr.Type)
	}
	if blockErr.Source != doc.Name {
		t.Errorf("error source = %q, want %q", blockErr.Source, doc.Name)
	}

	want := []struct {
		typ    TxType
		amount Money
		note   string
	}{
		{typ: TxInterest, amount: M(12.50, "EUR"), note: "Zinsen Q2"},
		{typ: TxDeposit, amount: M(2500, "EUR"), note: "Einzahlung Juli"},
		{typ: TxWithdrawal, amount: M(300, "EUR"), note: "Dauerauftrag Miete"},
	}
	for i, w := range want {
		tx := items[i].(*TransactionItem).Transaction
		if tx.Type != w.typ {
			t.Errorf("item %d type = %s, want %s", i, tx.Type, w.typ)
		}
		if !tx.MonetaryAmount().Equal(w.amount) {
			t.Errorf("item %d amount = %s, want %s", i, tx.MonetaryAmount(), w.amount)
		}
		if tx.Note != w.note {
			t.Errorf("item %d note = %q, want %q", i, tx.Note, w.note)
		}
	}
}

func TestExtractDeduplicatesWithinDocument(t *testing.T) {
	doc := readFixture(t, "nordbank_two_dividends.txt")
	reg := NewRegistry()
	items, errs := NewExtractor(Nordbank()).Extract(doc, reg)
	if len(errs) != 0 {
		t.Fatalf("unexpected block errors: %v", errs)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want one security + two dividends", len(items))
	}
	if _, ok := items[0].(*SecurityItem); !ok {
		t.Fatal("first item must announce the security")
	}
	if reg.Len() != 1 {
		t.Errorf("registry holds %d securities, want 1", reg.Len())
	}

	// the second block resolved against the now-known security: no forex.
	second := items[2].(*TransactionItem).Transaction
	gross, _ := grossUnit(second.Units)
	if gross.HasForex() {
		t.Error("second dividend must not carry a forex counterpart")
	}
	if !second.MonetaryAmount().Equal(M(10.52, "EUR")) {
		t.Errorf("second amount = %s, want the unchanged 10.52 EUR", second.MonetaryAmount())
	}
}

func TestExtractAgainstPrefilledRegistry(t *testing.T) {
	doc := readFixture(t, "nordbank_dividend.txt")

	fresh := NewRegistry()
	freshItems, _ := NewExtractor(Nordbank()).Extract(doc, fresh)

	known := NewRegistry()
	known.Add(mustSecurity(t, "US0378331005", "865985", "", "Apple", "USD"))
	knownItems, errs := NewExtractor(Nordbank()).Extract(doc, known)
	if len(errs) != 0 {
		t.Fatalf("unexpected block errors: %v", errs)
	}

	if len(knownItems) != len(freshItems)-1 {
		t.Fatalf("prefilled run yields %d items, want one fewer than %d", len(knownItems), len(freshItems))
	}
	tx := knownItems[0].(*TransactionItem).Transaction
	if gross, _ := grossUnit(tx.Units); gross.HasForex() {
		t.Error("known security must not carry a forex counterpart")
	}
	if !tx.MonetaryAmount().Equal(M(7.51, "EUR")) {
		t.Errorf("amount = %s, booked amounts must stay unchanged", tx.MonetaryAmount())
	}
	if known.Len() != 1 {
		t.Errorf("registry grew to %d, want unchanged 1", known.Len())
	}
}

func TestExtractDeterministic(t *testing.T) {
	doc := readFixture(t, "nordbank_buy.txt")
	first, _ := NewExtractor(Nordbank()).Extract(doc, NewRegistry())
	second, _ := NewExtractor(Nordbank()).Extract(doc, NewRegistry())
	if !reflect.DeepEqual(first, second) {
		t.Error("extraction of the same document against equal registries must be identical")
	}
}

func TestExtractAtlanticSell(t *testing.T) {
	doc := readFixture(t, "atlantic_sell.txt")
	items, errs := NewExtractor(AtlanticBrokers()).Extract(doc, NewRegistry())
	if len(errs) != 0 {
		t.Fatalf("unexpected block errors: %v", errs)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want security + trade", len(items))
	}

	sec := items[0].(*SecurityItem).Security
	if sec.Ticker() != "DGE" || sec.ISIN() != "GB0002374006" {
		t.Errorf("security = %s/%s", sec.ISIN(), sec.Ticker())
	}

	e := items[1].(*BuySellItem).Entry
	if e.Account.Type != TxSell {
		t.Errorf("type = %s, want SELL", e.Account.Type)
	}
	if want := time.Date(2024, time.March, 18, 14, 32, 0, 0, time.UTC); !e.Date().Equal(want) {
		t.Errorf("date = %s, want %s", e.Date(), want)
	}
	if !e.Account.Shares.Equal(Q(120)) {
		t.Errorf("shares = %s, want 120", e.Account.Shares)
	}
	if !e.Account.FeeTotal().Equal(M(11.00, "GBP")) {
		t.Errorf("fee total = %s, want 11.00 GBP", e.Account.FeeTotal())
	}
	// a sale credits gross minus fees: 4512.00 - 11.00.
	if !e.MonetaryAmount().Equal(M(4501, "GBP")) {
		t.Errorf("amount = %s, want 4501 GBP", e.MonetaryAmount())
	}
}

func TestExtractFeeOrderCommutes(t *testing.T) {
	extract := func(fixture string) *BuySellEntry {
		t.Helper()
		doc := readFixture(t, fixture)
		items, errs := NewExtractor(HelvetiaTrust()).Extract(doc, NewRegistry())
		if len(errs) != 0 {
			t.Fatalf("%s: unexpected block errors: %v", fixture, errs)
		}
		if len(items) != 2 {
			t.Fatalf("%s: got %d items, want 2", fixture, len(items))
		}
		return items[1].(*BuySellItem).Entry
	}

	a := extract("helvetia_buy.txt")
	b := extract("helvetia_buy_reordered.txt")

	if !a.Account.FeeTotal().Equal(b.Account.FeeTotal()) {
		t.Errorf("fee totals differ: %s vs %s", a.Account.FeeTotal(), b.Account.FeeTotal())
	}
	if !a.Account.FeeTotal().Equal(M(29.25, "CHF")) {
		t.Errorf("fee total = %s, want 29.25 CHF", a.Account.FeeTotal())
	}
	if !a.Account.TaxTotal().Equal(M(1.96, "CHF")) {
		t.Errorf("tax total = %s, want 1.96 CHF", a.Account.TaxTotal())
	}
	if !a.Account.GrossValue().Equal(M(2612.50, "CHF")) {
		t.Errorf("gross = %s, want 2'612.50 CHF", a.Account.GrossValue())
	}
	// buy debits gross plus taxes and fees: 2612.50 + 1.96 + 29.25.
	if !a.MonetaryAmount().Equal(M(2643.71, "CHF")) || !b.MonetaryAmount().Equal(M(2643.71, "CHF")) {
		t.Errorf("amounts = %s / %s, want 2643.71 CHF", a.MonetaryAmount(), b.MonetaryAmount())
	}
	if want := time.Date(2024, time.April, 2, 9, 30, 15, 0, time.UTC); !a.Date().Equal(want) {
		t.Errorf("date = %s, want %s", a.Date(), want)
	}
}

func TestExtractNothingRecognized(t *testing.T) {
	doc := Document{Name: "letter.txt", Text: "Sehr geehrte Damen und Herren,\nwir bestätigen den Erhalt.\n"}
	items, errs := NewExtractor(Nordbank()).Extract(doc, NewRegistry())
	if len(items) != 0 || len(errs) != 0 {
		t.Errorf("got %d items and %d errors, want none for pure boilerplate", len(items), len(errs))
	}
	if !strings.Contains((&BlockError{Source: "x", Type: BlockBuy, Err: errMissingField}).Error(), "cannot parse") {
		t.Error("BlockError message should describe the parse failure")
	}
}
