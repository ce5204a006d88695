// Command logimart drives the LogiMart storefront from the terminal.
//
// State lives in the store selected by STORE_DRIVER (disk by default, so
// the session and cart survive between invocations):
//
//	logimart seed                       # seed the demo catalog (idempotent)
//	logimart login admin@logimart.com admin123
//	logimart products list
//	logimart cart add 5
//	logimart checkout --name "Jane" --address "456 Oak Ave" --phone "+91 9876543211" --payment upi
//	logimart orders status ORD004 processing
//	logimart metrics
//
// With STORE_DRIVER=sql run `logimart migrate` once; the store also
// migrates on open.
package main
