// Package config reads the YAML configuration of the command line tool and
// refactoring scripts, batches of refactoring commands applied in order.
//
// A configuration file looks like:
//
//	log:
//	  level: info
//	write: true
//	document: model/insurance.cml
//
// A script looks like:
//
//	version: "1"
//	document: model/insurance.cml
//	steps:
//	  - command: SplitBoundedContextByOwner
//	    args: CustomerManagement
//	  - command: MergeAggregates
//	    args: [Customers, Addresses, "true"]
package config
