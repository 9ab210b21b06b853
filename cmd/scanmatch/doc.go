// Command scanmatch watches an ID-scanner CSV export for new scans and ranks
// stored contacts against each scanned identity.
package main
