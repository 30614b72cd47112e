/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/soildyn/gobem/bem"
	"github.com/soildyn/gobem/greens"
	"github.com/soildyn/gobem/input"
	"github.com/soildyn/gobem/mesh"
	"github.com/soildyn/gobem/utils"
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble [problem file]",
	Short: "Assemble influence matrices for a YAML problem definition",
	Long: `Reads a YAML problem definition (mesh, fundamental solution,
requested matrices and optional selection), assembles the displacement
and traction influence matrices and prints a summary,

gobem assemble problem.yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pm := &ProblemModel{ProblemFile: args[0]}
		pm.Profile, _ = cmd.Flags().GetBool("profile")
		pm.SparseFile, _ = cmd.Flags().GetString("sparse")
		if err := RunAssemble(pm); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().BoolP("profile", "p", false, "generate a runtime profile of the assembly")
	assembleCmd.Flags().StringP("sparse", "s", "", "write selection results as sparse triplets to this file")
}

type ProblemModel struct {
	ProblemFile string
	SparseFile  string
	Profile     bool
}

func RunAssemble(pm *ProblemModel) error {
	data, err := ioutil.ReadFile(pm.ProblemFile)
	if err != nil {
		return err
	}
	var p input.Problem
	if err = p.Parse(data); err != nil {
		return err
	}
	p.Print()

	m, err := p.Mesh()
	if err != nil {
		return err
	}
	ctx, err := mesh.NewContext(m)
	if err != nil {
		return err
	}
	g, err := p.Provider()
	if err != nil {
		return err
	}
	nDof, err := greens.ColDOF(g.UComponents())
	if err != nil {
		return err
	}
	sel, err := p.Selection(nDof)
	if err != nil {
		return err
	}
	fmt.Printf("mesh: %d nodes, %d elements, %d collocation points, %d DOF\n",
		len(m.Nodes), len(m.Elts), ctx.NColl(), nDof*ctx.NColl())

	if pm.Profile {
		defer profile.Start().Stop()
	}
	start := time.Now()
	U, T, err := bem.Assemble(ctx, g, bem.Options{WantU: p.WantU, WantT: p.WantT, Selection: sel})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printSummary("U", U)
	printSummary("T", T)
	fmt.Printf("assembly time: %v\n", elapsed)

	if pm.SparseFile != "" {
		if sel == nil {
			return fmt.Errorf("sparse export needs a selection in the problem definition")
		}
		f, err := os.Create(pm.SparseFile)
		if err != nil {
			return err
		}
		defer f.Close()
		writeSparse(f, "U", U)
		writeSparse(f, "T", T)
		fmt.Printf("selection results written to %s\n", pm.SparseFile)
	}
	return nil
}

func printSummary(name string, m *bem.BatchMatrix) {
	if m == nil {
		return
	}
	var max float64
	for _, v := range m.Re {
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	kind := "real"
	if m.Cmplx {
		kind = "complex"
	}
	fmt.Printf("%s: %d x %d, %d sets, %s, max |re| = %g\n", name, m.Rows, m.Cols, m.NSet, kind, max)
}

// writeSparse exports every batch slab of m as "name set row col re im"
// triplet lines, in row-major order.
func writeSparse(w io.Writer, name string, m *bem.BatchMatrix) {
	if m == nil {
		return
	}
	for is := 0; is < m.NSet; is++ {
		re := utils.NewDOK(m.Rows, m.Cols)
		im := utils.NewDOK(m.Rows, m.Cols)
		for row := 0; row < m.Rows; row++ {
			for col := 0; col < m.Cols; col++ {
				vr, vi := m.At(row, col, is)
				if vr != 0 {
					re.Set(row, col, vr)
				}
				if vi != 0 {
					im.Set(row, col, vi)
				}
			}
		}
		re.ToCSR().DoNonZero(func(row, col int, v float64) {
			fmt.Fprintf(w, "%s %d %d %d %.17g %.17g\n", name, is, row, col, v, im.At(row, col))
		})
		// Entries with a zero real part still need a line.
		im.ToCSR().DoNonZero(func(row, col int, v float64) {
			if re.At(row, col) == 0 {
				fmt.Fprintf(w, "%s %d %d %d %.17g %.17g\n", name, is, row, col, 0., v)
			}
		})
	}
}
