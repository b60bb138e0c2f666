// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// covidwatch summarizes, aligns, partitions, and charts COVID-19 case data.
package main

import "github.com/derat/covidwatch/cmd"

func main() {
	cmd.Execute()
}
