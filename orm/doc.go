/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* It has a primary index, either chosen by the caller or allocated
from a sequence.
* It may possess one or more secondary indexes (1:1 or 1:N)

Keys are laid out as follows:

	<bucket>:<key>                  model data
	_s.<bucket>:<sequence>          sequence counter
	_i.<bucket>_<index>:<value>     list of primary keys (MultiRef)
*/
package orm
