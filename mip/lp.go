// Copyright 2025 The airland Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mip

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ExportLP returns the model as a string in CPLEX LP format. Variables and
// rows appear in creation order, so equal models export to equal strings.
func ExportLP(m *Model) (string, error) {
	if err := m.Validate(); err != nil {
		return "", fmt.Errorf("cannot export an invalid model as LP format: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\\ Model: %s\n", m.name)
	fmt.Fprintf(&b, "\\ Variables: %d  Constraints: %d\n", len(m.vars), len(m.constrs))

	if m.maximize {
		b.WriteString("Maximize\n")
	} else {
		b.WriteString("Minimize\n")
	}
	b.WriteString(" obj:")
	writeTerms(&b, m, m.objective)
	if m.objOffset != 0 {
		fmt.Fprintf(&b, " + %s", lpFloat(m.objOffset))
	}
	b.WriteString("\n")

	b.WriteString("Subject To\n")
	for i, ct := range m.constrs {
		name := ct.name
		if name == "" {
			name = fmt.Sprintf("c%d", i)
		}
		name = lpName(name)
		lbFin := !math.IsInf(ct.lb, -1)
		ubFin := !math.IsInf(ct.ub, 1)
		switch {
		case lbFin && ubFin && ct.lb == ct.ub:
			fmt.Fprintf(&b, " %s:", name)
			writeTerms(&b, m, ct.coeffs)
			fmt.Fprintf(&b, " = %s\n", lpFloat(ct.lb))
		case lbFin && ubFin:
			fmt.Fprintf(&b, " %s_lo:", name)
			writeTerms(&b, m, ct.coeffs)
			fmt.Fprintf(&b, " >= %s\n", lpFloat(ct.lb))
			fmt.Fprintf(&b, " %s_up:", name)
			writeTerms(&b, m, ct.coeffs)
			fmt.Fprintf(&b, " <= %s\n", lpFloat(ct.ub))
		case ubFin:
			fmt.Fprintf(&b, " %s:", name)
			writeTerms(&b, m, ct.coeffs)
			fmt.Fprintf(&b, " <= %s\n", lpFloat(ct.ub))
		case lbFin:
			fmt.Fprintf(&b, " %s:", name)
			writeTerms(&b, m, ct.coeffs)
			fmt.Fprintf(&b, " >= %s\n", lpFloat(ct.lb))
		default:
			// Rows unbounded on both sides are vacuous but kept visible.
			fmt.Fprintf(&b, " %s:", name)
			writeTerms(&b, m, ct.coeffs)
			b.WriteString(" >= -infinity\n")
		}
	}

	b.WriteString("Bounds\n")
	for i, v := range m.vars {
		if v.vtype == BinaryVar {
			continue
		}
		name := lpVarName(m, VarIndex(i))
		lbFin := !math.IsInf(v.lb, -1)
		ubFin := !math.IsInf(v.ub, 1)
		switch {
		case lbFin && ubFin && v.lb == v.ub:
			fmt.Fprintf(&b, " %s = %s\n", name, lpFloat(v.lb))
		case lbFin && ubFin:
			fmt.Fprintf(&b, " %s <= %s <= %s\n", lpFloat(v.lb), name, lpFloat(v.ub))
		case !lbFin && ubFin:
			fmt.Fprintf(&b, " -infinity <= %s <= %s\n", name, lpFloat(v.ub))
		case lbFin && !ubFin:
			if v.lb != 0 {
				fmt.Fprintf(&b, " %s >= %s\n", name, lpFloat(v.lb))
			}
		default:
			fmt.Fprintf(&b, " %s free\n", name)
		}
	}

	var generals, binaries []string
	for i, v := range m.vars {
		switch v.vtype {
		case IntegerVar:
			generals = append(generals, lpVarName(m, VarIndex(i)))
		case BinaryVar:
			binaries = append(binaries, lpVarName(m, VarIndex(i)))
		}
	}
	if len(generals) > 0 {
		b.WriteString("Generals\n ")
		b.WriteString(strings.Join(generals, " "))
		b.WriteString("\n")
	}
	if len(binaries) > 0 {
		b.WriteString("Binaries\n ")
		b.WriteString(strings.Join(binaries, " "))
		b.WriteString("\n")
	}
	b.WriteString("End\n")

	return b.String(), nil
}

// WriteLP writes the model to w in CPLEX LP format.
func (m *Model) WriteLP(w io.Writer) error {
	s, err := ExportLP(m)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func writeTerms(b *strings.Builder, m *Model, coeffs []varCoeff) {
	if len(coeffs) == 0 {
		b.WriteString(" 0")
		return
	}
	for i, vc := range coeffs {
		abs := math.Abs(vc.coeff)
		switch {
		case i == 0 && vc.coeff < 0:
			b.WriteString(" -")
		case i == 0:
			b.WriteString(" ")
		case vc.coeff < 0:
			b.WriteString(" - ")
		default:
			b.WriteString(" + ")
		}
		if abs != 1 {
			b.WriteString(lpFloat(abs))
			b.WriteString(" ")
		}
		b.WriteString(lpVarName(m, vc.ind))
	}
}

func lpVarName(m *Model, ind VarIndex) string {
	if name := m.vars[ind].name; name != "" {
		return lpName(name)
	}
	return fmt.Sprintf("x%d", ind)
}

// lpName maps a name onto the identifier charset the LP format accepts.
func lpName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" || out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

func lpFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
