// Package cmd implements the supplyctl command tree.
//
// supplyctl runs the metrics and forecast engines locally against a dataset
// file or database and prints the results as tables or JSON. It also
// imports JSON datasets into SQL databases and checks a running
// supplylens-server.
package cmd
