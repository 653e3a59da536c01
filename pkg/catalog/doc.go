// Package catalog imports destinations and tour packages from a YAML file.
//
// A catalog file lists destinations with their packages:
//
//	destinations:
//	  - slug: kerala
//	    name: Kerala
//	    packages:
//	      - slug: kerala-backwaters
//	        title: Kerala Backwaters
//	        duration_days: 5
//	        price: 24999.50
//
// Prices are written in major units and stored in minor units. Records are
// matched by slug, so loading the same file twice updates rather than duplicates.
// Watch keeps a running process in sync with a file on disk.
package catalog
