/*
Command mkobs generates synthetic twilight observation files for twical.

Observations are generated from the same forward model twical fits
against, at operator supplied "true" dawn and dusk depression angles,
optionally with uniform clock noise added.  Calibrating the generated
file with twical should recover the true angles, which makes mkobs
useful for end to end checks and for exploring how sensitive the fit is
to noise and to the spread of dates.

Usage

Command line options:

  mkobs [options]                      write a synthetic CSV to stdout
  mkobs -v                             display version and copyright

Options:

  -dawn, -dusk   true depression angles, degrees (default 15, 15)
  -lat, -lng     site coordinates, degrees (default Mecca)
  -tz            UTC offset, hours (default 3)
  -from          first observation date, yyyy-mm-dd (default 2024-01-15)
  -n             number of observations (default 12)
  -step          days between observations (default 30)
  -noise         uniform noise amplitude, minutes (default 0)
  -seed          noise generator seed (default 1)

Output

CSV in the twical observation format, header date,lat,lng,tz,dawn,dusk,
weight, one row per date.  On dates where the sun never reaches a
depression angle (polar day or night at extreme sites) the
corresponding cell is left empty, as the curation pipeline would leave
an unobservable event unrecorded.

-------------
Public domain.
*/
package main
