// Package document models EJSON secrets files as ordered JSON trees.
//
// A secrets file is a JSON object. Its structure, key names and the reserved
// _public_key member stay readable; string values are rewritten in place by
// a TransformFunc, which is how encryption and decryption are applied.
//
// # Eligibility
//
// Transform only hands a string to the TransformFunc when its own key does
// not start with an underscore:
//
//	{
//	  "_public_key": "...",      // skipped
//	  "database_url": "...",     // transformed
//	  "_settings": {             // recursed into
//	    "_region": "us-east-1",  // skipped
//	    "token": "..."           // transformed
//	  }
//	}
//
// Numbers, booleans, nulls and arrays are never transformed.
//
// # Flattened view
//
// Flatten projects a document into dotted paths for point lookups, such as
// "database.password" or "certs.[tls.crt]".
package document
