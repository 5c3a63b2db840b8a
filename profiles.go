package brokerimport

import "regexp"

// The built-in profiles cover three institution families with deliberately
// different layouts: a German retail bank printing comma decimals and
// trailing debit signs, an English broker with labeled columns, and a Swiss
// private bank grouping thousands with apostrophes. Real catalogues are
// maintained as data outside this package; these three double as living
// documentation of the rule format.

// BuiltinProfiles returns the profiles shipped with the package.
func BuiltinProfiles() []*Profile {
	return []*Profile{Nordbank(), AtlanticBrokers(), HelvetiaTrust()}
}

// Nordbank is a German-locale retail bank: dd.MM.yyyy dates, 1.234,56
// numbers, amounts marked with a trailing - for debits and + for credits,
// cancellations prefixed with "Storno: ".
func Nordbank() *Profile {
	// identity line shared by every block type that references a security.
	stueck := Rule{Pattern: regexp.MustCompile(`(?m)^Stück\s+(?P<shares>[\d.,]+)\s+(?P<name>.+?)\s+(?P<isin>[A-Z]{2}[A-Z0-9]{9}[0-9])\s+\((?P<wkn>[A-Z0-9]{6})\)\s*$`)}
	tax := Rule{
		Pattern: regexp.MustCompile(`(?m)^(?:Kapitalertragsteuer|Solidaritätszuschlag|Kirchensteuer)\b[^\n]*?\s(?P<tax>[\d.,]+)-?\s+[A-Z]{3}\s*$`),
		Repeat:  true,
	}
	fee := Rule{
		Pattern: regexp.MustCompile(`(?m)^(?:Provision|Transaktionsentgelt|Handelsplatzgebühr)\b[^\n]*?\s(?P<fee>[\d.,]+)-?\s+[A-Z]{3}\s*$`),
		Repeat:  true,
	}
	trade := []Rule{
		stueck,
		{Pattern: regexp.MustCompile(`(?m)^Handelstag\s+(?P<date>\d{2}\.\d{2}\.\d{4})(?:\s+Handelszeit\s+(?P<time>\d{2}:\d{2}(?::\d{2})?))?\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^Kurswert\s+(?P<gross>[\d.,]+)[-+]?\s+(?P<currency>[A-Z]{3})\s*$`)},
		tax,
		fee,
		{Pattern: regexp.MustCompile(`(?m)^Ausmachender Betrag\s+(?P<amount>[\d.,]+)[-+]?\s+(?P<currency>[A-Z]{3})\s*$`)},
	}
	dividend := []Rule{
		stueck,
		{Pattern: regexp.MustCompile(`(?m)^Zahlbarkeitstag\s+(?P<date>\d{2}\.\d{2}\.\d{4})\s*`)},
		// the gross credit in booking currency carries a trailing +,
		// the restatement in the security's currency carries none.
		{Pattern: regexp.MustCompile(`(?m)^Dividendengutschrift\s+(?P<forexAmount>[\d.,]+)\s+(?P<forexCurrency>[A-Z]{3})\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^Dividendengutschrift\s+(?P<gross>[\d.,]+)\+\s+(?P<currency>[A-Z]{3})\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^Devisenkurs\s+[A-Z]{3}\s*/\s*[A-Z]{3}\s+(?P<exchangeRate>[\d.,]+)\s*$`)},
		tax,
		{Pattern: regexp.MustCompile(`(?m)^Ausmachender Betrag\s+(?P<amount>[\d.,]+)\+?\s+(?P<currency>[A-Z]{3})\s*$`)},
	}
	cash := []Rule{
		{Pattern: regexp.MustCompile(`(?m)^Buchungstag\s+(?P<date>\d{2}\.\d{2}\.\d{4})\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^Betrag\s+(?P<amount>[\d.,]+)[-+]?\s+(?P<currency>[A-Z]{3})\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^Verwendungszweck\s+(?P<note>.+?)\s*$`)},
	}
	removal := []Rule{
		stueck,
		{Pattern: regexp.MustCompile(`(?m)^Buchungstag\s+(?P<date>\d{2}\.\d{2}\.\d{4})\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^Kurswert\s+(?P<gross>[\d.,]+)[-+]?\s+(?P<currency>[A-Z]{3})\s*$`)},
	}
	return &Profile{
		Name:        "Nordbank",
		Match:       regexp.MustCompile(`(?m)^\s*Nordbank AG`),
		Numbers:     CommaDecimal,
		DateLayouts: []string{"02.01.2006"},
		Cancel:      regexp.MustCompile(`(?m)^Storno: `),
		Sections: []Section{
			{Marker: regexp.MustCompile(`^(?:Storno: )?Wertpapier Abrechnung Kauf\s*$`), Type: BlockBuy},
			{Marker: regexp.MustCompile(`^(?:Storno: )?Wertpapier Abrechnung Verkauf\s*$`), Type: BlockSell},
			{Marker: regexp.MustCompile(`^(?:Storno: )?Dividendengutschrift\s*$`), Type: BlockDividend},
			{Marker: regexp.MustCompile(`^Zinsgutschrift\s*$`), Type: BlockInterest},
			{Marker: regexp.MustCompile(`^Überweisungseingang\s*$`), Type: BlockDeposit},
			{Marker: regexp.MustCompile(`^Überweisungsausgang\s*$`), Type: BlockWithdrawal},
			{Marker: regexp.MustCompile(`^Depotgebühren\s*$`), Type: BlockFee},
			{Marker: regexp.MustCompile(`^Steuererstattung\s*$`), Type: BlockTaxRefund},
			{Marker: regexp.MustCompile(`^Wertpapierausgang\s*$`), Type: BlockRemoval},
		},
		Rules: map[BlockType][]Rule{
			BlockBuy:        trade,
			BlockSell:       trade,
			BlockDividend:   dividend,
			BlockInterest:   cash,
			BlockDeposit:    cash,
			BlockWithdrawal: cash,
			BlockFee:        cash,
			BlockTaxRefund:  cash,
			BlockRemoval:    removal,
		},
	}
}

// AtlanticBrokers is an English-locale broker: "Mar 18, 2024" dates,
// 1,234.56 numbers, labeled lines.
func AtlanticBrokers() *Profile {
	identity := []Rule{
		{Pattern: regexp.MustCompile(`(?m)^Security:\s+(?P<name>.+?)\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^ISIN:\s+(?P<isin>[A-Z]{2}[A-Z0-9]{9}[0-9])\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^Symbol:\s+(?P<ticker>[A-Z][A-Z0-9.]*)\s*$`)},
	}
	trade := append(append([]Rule{}, identity...),
		Rule{Pattern: regexp.MustCompile(`(?m)^Trade Date:\s+(?P<date>[A-Z][a-z]{2} \d{1,2}, \d{4})(?:\s+at\s+(?P<time>\d{2}:\d{2}(?::\d{2})?))?`)},
		Rule{Pattern: regexp.MustCompile(`(?m)^Quantity:\s+(?P<shares>[\d,.]+)\s*$`)},
		Rule{Pattern: regexp.MustCompile(`(?m)^Gross (?:Proceeds|Amount):\s+(?P<gross>[\d,.]+)\s+(?P<currency>[A-Z]{3})\s*$`)},
		Rule{Pattern: regexp.MustCompile(`(?m)^(?:Commission|Transaction Levy|Exchange Fee):\s+(?P<fee>[\d,.]+)\s+[A-Z]{3}\s*$`), Repeat: true},
		Rule{Pattern: regexp.MustCompile(`(?m)^(?:Stamp Duty|Financial Transaction Tax):\s+(?P<tax>[\d,.]+)\s+[A-Z]{3}\s*$`), Repeat: true},
		Rule{Pattern: regexp.MustCompile(`(?m)^Net (?:Proceeds|Amount):\s+(?P<amount>[\d,.]+)\s+(?P<currency>[A-Z]{3})\s*$`)},
	)
	dividend := append(append([]Rule{}, identity...),
		Rule{Pattern: regexp.MustCompile(`(?m)^Payment Date:\s+(?P<date>[A-Z][a-z]{2} \d{1,2}, \d{4})`)},
		Rule{Pattern: regexp.MustCompile(`(?m)^Shares Held:\s+(?P<shares>[\d,.]+)\s*$`)},
		Rule{Pattern: regexp.MustCompile(`(?m)^Gross Dividend:\s+(?P<gross>[\d,.]+)\s+(?P<currency>[A-Z]{3})\s*$`)},
		Rule{Pattern: regexp.MustCompile(`(?m)^Gross Dividend \(local\):\s+(?P<forexAmount>[\d,.]+)\s+(?P<forexCurrency>[A-Z]{3})\s*$`)},
		Rule{Pattern: regexp.MustCompile(`(?m)^Exchange Rate:\s+(?P<exchangeRate>[\d,.]+)\s*$`)},
		Rule{Pattern: regexp.MustCompile(`(?m)^Withholding Tax(?:\s+\(\d+%\))?:\s+(?P<tax>[\d,.]+)\s+[A-Z]{3}\s*$`), Repeat: true},
		Rule{Pattern: regexp.MustCompile(`(?m)^Net Dividend:\s+(?P<amount>[\d,.]+)\s+(?P<currency>[A-Z]{3})\s*$`)},
	)
	return &Profile{
		Name:        "Atlantic Brokers",
		Match:       regexp.MustCompile(`(?m)^\s*Atlantic Brokers`),
		Numbers:     PointDecimal,
		DateLayouts: []string{"Jan 2, 2006", "01/02/2006"},
		Cancel:      regexp.MustCompile(`(?m)^CANCELLATION\b`),
		Sections: []Section{
			{Marker: regexp.MustCompile(`^Contract Note - Purchase\s*$`), Type: BlockBuy},
			{Marker: regexp.MustCompile(`^Contract Note - Sale\s*$`), Type: BlockSell},
			{Marker: regexp.MustCompile(`^Dividend Advice\s*$`), Type: BlockDividend},
		},
		Rules: map[BlockType][]Rule{
			BlockBuy:      trade,
			BlockSell:     trade,
			BlockDividend: dividend,
		},
	}
}

// HelvetiaTrust is a Swiss private bank: dd.MM.yyyy dates with an optional
// time of day, 1'234.56 numbers.
func HelvetiaTrust() *Profile {
	trade := []Rule{
		{Pattern: regexp.MustCompile(`(?m)^Titel\s+(?P<name>.+?)\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^ISIN\s+(?P<isin>[A-Z]{2}[A-Z0-9]{9}[0-9])\s+Valor\s+(?P<wkn>[0-9]+)\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^Abschlussdatum\s+(?P<date>\d{2}\.\d{2}\.\d{4})(?:\s+(?P<time>\d{2}:\d{2}(?::\d{2})?))?\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^Anzahl\s+(?P<shares>[\d'.,]+)\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^Kurswert\s+(?P<gross>[\d'.,]+)\s+(?P<currency>[A-Z]{3})\s*$`)},
		{Pattern: regexp.MustCompile(`(?m)^(?:Courtage|Börsengebühr|Abwicklungsgebühr)\s+(?P<fee>[\d'.,]+)\s+[A-Z]{3}\s*$`), Repeat: true},
		{Pattern: regexp.MustCompile(`(?m)^(?:Eidg\. Umsatzabgabe|Quellensteuer)\s+(?P<tax>[\d'.,]+)\s+[A-Z]{3}\s*$`), Repeat: true},
		{Pattern: regexp.MustCompile(`(?m)^(?:Belastung|Gutschrift)\s+(?P<amount>[\d'.,]+)\s+(?P<currency>[A-Z]{3})\s*$`)},
	}
	return &Profile{
		Name:        "Helvetia Trust",
		Match:       regexp.MustCompile(`(?m)^\s*Helvetia Trust`),
		Numbers:     PointDecimal,
		DateLayouts: []string{"02.01.2006"},
		Cancel:      regexp.MustCompile(`(?m)^Storno\b`),
		Sections: []Section{
			{Marker: regexp.MustCompile(`^(?:Storno )?Börsenabrechnung - Kauf\s*$`), Type: BlockBuy},
			{Marker: regexp.MustCompile(`^(?:Storno )?Börsenabrechnung - Verkauf\s*$`), Type: BlockSell},
		},
		Rules: map[BlockType][]Rule{
			BlockBuy:  trade,
			BlockSell: trade,
		},
	}
}
