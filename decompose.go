package brokerimport

import "fmt"

// decompose combines the captured amounts of a block into the transaction's
// units: one GROSS_VALUE unit, at most one TAX unit and at most one FEE
// unit.
//
// Repeated tax and fee lines are summed; institutions print their
// components in varying order, so the result must not depend on it.
// The gross value is taken from a stated gross field, or back-computed from
// the stated net amount and the decomposed taxes and fees.
//
// When the block states the gross value in a second currency, the
// foreign-currency counterpart and exchange rate are attached to the
// GROSS_VALUE unit, but only for a New resolution: an existing registry
// security already defines the canonical currency, so the forex pair is
// dropped and the booked amounts stand as they are. A nil resolution means
// the block has no security and therefore no forex.
func decompose(f *fields, p *Profile, typ TxType, res *Resolution) ([]Unit, error) {
	currency, err := f.require(fieldCurrency)
	if err != nil {
		return nil, err
	}

	taxes, err := f.sum(fieldTax, currency, p)
	if err != nil {
		return nil, err
	}
	fees, err := f.sum(fieldFee, currency, p)
	if err != nil {
		return nil, err
	}

	gross, err := grossValue(f, p, typ, taxes, fees)
	if err != nil {
		return nil, err
	}

	grossUnit := NewUnit(GrossValue, gross)
	if res != nil && !res.Existing {
		forexUnit, ok, err := forexCounterpart(f, p, gross)
		if err != nil {
			return nil, err
		}
		if ok {
			grossUnit = forexUnit
		}
	}

	units := []Unit{grossUnit}
	if !taxes.IsZero() {
		units = append(units, NewUnit(Tax, taxes))
	}
	if !fees.IsZero() {
		units = append(units, NewUnit(Fee, fees))
	}
	return units, nil
}

// grossValue returns the stated gross amount, or derives it from the stated
// net amount: an outflow pays gross plus taxes and fees, an inflow credits
// gross minus them.
func grossValue(f *fields, p *Profile, typ TxType, taxes, fees Money) (Money, error) {
	if f.str(fieldGross) != "" {
		return f.money(fieldGross, fieldCurrency, p)
	}
	net, err := f.money(fieldAmount, fieldCurrency, p)
	if err != nil {
		return Money{}, fmt.Errorf("neither gross nor net amount stated: %w", err)
	}
	if typ.IsOutflow() {
		return net.Sub(taxes).Sub(fees), nil
	}
	return net.Add(taxes).Add(fees), nil
}

// forexCounterpart builds the GROSS_VALUE unit with the stated
// foreign-currency amount and rate; ok is false when the block states no
// counterpart.
func forexCounterpart(f *fields, p *Profile, gross Money) (Unit, bool, error) {
	if f.str(fieldForexAmount) == "" {
		return Unit{}, false, nil
	}
	forex, err := f.money(fieldForexAmount, fieldForexCurrency, p)
	if err != nil {
		return Unit{}, false, err
	}
	rate, ok, err := f.rate(p)
	if err != nil {
		return Unit{}, false, err
	}
	if !ok {
		return Unit{}, false, fmt.Errorf("field %q: forex amount without exchange rate: %w", fieldExchangeRate, errMissingField)
	}
	u, err := NewForexUnit(gross, forex, rate)
	if err != nil {
		return Unit{}, false, err
	}
	return u, true, nil
}
