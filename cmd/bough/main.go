// Command bough plays, traces and inspects animated chart specs.
//
// Usage:
//
//	bough play chart.yaml           # window with hot reload
//	bough trace chart.yaml          # headless, prints phase events and frames
//	bough tui chart.yaml            # terminal bars
//	bough easings                   # list the easing catalog
package main

func main() {
	Execute()
}
