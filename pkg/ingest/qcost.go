package ingest

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/gitrdm/goqsm/pkg/qsm"
)

// QCostTable overrides a PIClass's cost and quantified form, keyed by the
// exact {0,1,-} cube string of its representative PI, grounded on
// original_source/py-qsm/minimizer.py's calculate_weights:
//
//	-> pla: ----------1----1
//	quantifier-free: (~committed(r1) | ~aborted(r0))
//	quantified: (forall R1, R2 . ((R2 = R1) | ~aborted(R2) | ~committed(R1)))
//	num-forall: 2
//	num-exists: 0
//	num-lits: 3
//
// qcost is num-forall + num-exists + num-lits; quantifier-free is parsed
// but discarded, since nothing downstream consumes the unquantified form.
type QCostTable struct {
	records map[string]qcostRecord
}

type qcostRecord struct {
	quantifiedForm string
	qcost          int
}

// ParseQCostFile reads a quantified-cost weighting file.
func ParseQCostFile(r io.Reader) (*QCostTable, error) {
	sc := bufio.NewScanner(r)
	records := make(map[string]qcostRecord)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "->") {
			return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "expected a \"->\" record start, got %q", line)
		}

		var cubeStr string
		var err error
		if rest := strings.TrimSpace(line[2:]); rest != "" {
			// "-> pla: <cube>" on one line.
			parts := strings.SplitN(rest, ":", 2)
			if len(parts) != 2 || strings.TrimSpace(parts[0]) != "pla" {
				return nil, qsm.FatalErrorf(qsm.CategoryMalformedInput, "expected \"pla\" field, got %q", rest)
			}
			cubeStr = strings.TrimSpace(parts[1])
		} else if cubeStr, err = nextQCostField(sc, "pla"); err != nil {
			return nil, err
		}
		if _, err := nextQCostField(sc, "quantifier-free"); err != nil {
			return nil, err
		}
		qform, err := nextQCostField(sc, "quantified")
		if err != nil {
			return nil, err
		}
		numForall, err := nextQCostIntField(sc, "num-forall")
		if err != nil {
			return nil, err
		}
		numExists, err := nextQCostIntField(sc, "num-exists")
		if err != nil {
			return nil, err
		}
		numLits, err := nextQCostIntField(sc, "num-lits")
		if err != nil {
			return nil, err
		}

		records[cubeStr] = qcostRecord{
			quantifiedForm: qform,
			qcost:          numForall + numExists + numLits,
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &QCostTable{records: records}, nil
}

// nextQCostField scans the next non-empty line, requiring it to be of the
// form "<key>: <value>", and returns value.
func nextQCostField(sc *bufio.Scanner, key string) (string, error) {
	line, ok := nextQCostLine(sc)
	if !ok {
		return "", qsm.FatalErrorf(qsm.CategoryMalformedInput, "qcost file ended while expecting %q field", key)
	}
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != key {
		return "", qsm.FatalErrorf(qsm.CategoryMalformedInput, "expected %q field, got %q", key, line)
	}
	return strings.TrimSpace(parts[1]), nil
}

func nextQCostIntField(sc *bufio.Scanner, key string) (int, error) {
	v, err := nextQCostField(sc, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, qsm.FatalErrorf(qsm.CategoryMalformedInput, "malformed %q value %q: %v", key, v, err)
	}
	return n, nil
}

func nextQCostLine(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		return line, true
	}
	return "", false
}

// ApplyTo sets QCost and QuantifiedForm on every PIClass whose
// representative's exact cube string matches a parsed record.
func (t *QCostTable) ApplyTo(classes []*qsm.PIClass) {
	for _, pc := range classes {
		rec, ok := t.records[pc.Repr.String()]
		if !ok {
			continue
		}
		pc.QCost = rec.qcost
		pc.QuantifiedForm = rec.quantifiedForm
	}
}
