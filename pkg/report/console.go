// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
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

package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const roundTo = 100 * time.Millisecond

var titler = cases.Title(language.English)

// RenderConsole writes the human-readable summary. Machine-readable formats
// go through the serializer instead.
func RenderConsole(w io.Writer, rep *Report) error {
	head := color.New(color.FgGreen, color.Bold)
	title := "Installation Complete"
	if rep.Failed() {
		head = color.New(color.FgRed, color.Bold)
		title = "Installation Failed"
	}
	dim := color.New(color.Faint)
	warn := color.New(color.FgYellow)

	if _, err := head.Fprintln(w, title); err != nil {
		return err
	}
	if _, err := dim.Fprintf(w, "run %s on %s in %s\n\n",
		rep.RunID, rep.Distro, rep.Duration.Round(roundTo)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tSTATUS\tDURATION")
	for _, s := range rep.Steps {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			titler.String(s.Name), s.Status, s.Duration.Round(roundTo))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOOL\tVERSION")
	for _, t := range rep.Tools {
		ver := t.Version
		if ver == NotFound {
			ver = warn.Sprint(ver)
		}
		fmt.Fprintf(tw, "%s\t%s\n", t.Name, ver)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	footer := "\nOpen a new shell (or re-login) for group membership and PATH changes to apply."
	if rep.Failed() {
		footer = "\nThe run stopped at the failed step; see the installation log for its output."
	}
	_, err := dim.Fprintln(w, footer)
	return err
}
