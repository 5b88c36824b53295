// Package report presents a simulated adsorption curve: a success line with
// the final amount adsorbed, an optional chart, or a failure line.
package report
