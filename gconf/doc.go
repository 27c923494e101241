/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension owns a single configuration entity, stored under the
"_c:<package name>" key. The entity is validated before every write.
Initial values are loaded from the "conf" section of the genesis file:

  "conf": {
    "lending": {"metadata": {"schema": 1}, ...}
  }
*/
package gconf
