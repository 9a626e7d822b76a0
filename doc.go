/*
 * doc.go, part of qmzone.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * qmzone is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package qmzone prepares PDB structures for multiscale QM/MM calculations.
It marks atoms as belonging to up to three computational regions (two QM
levels and an Active region), persisting the membership in the occupancy
and b-factor columns of the PDB file, the encoding most QM/MM drivers
expect.


	**qmzone capabilities**


    Reads/writes PDB files, plain or gzipped, preserving the region
	encoding bit-exact across a round-trip.

    Assigns and clears region membership with checked edits: an edit that
	would change nothing is refused, so the user always knows whether a
	command had an effect. Moving atoms between QM levels resolves the
	conflict automatically.

    Records every mutation as an invertible operation; a session journal
	gives unlimited undo/redo.

    Region statistics per atom and per residue.

    Steric clash and van der Waals contact detection over a k-d tree, with
	bonded and same-residue pairs filtered out.

    Distance, angle and dihedral measurements.

The selection mini-language lives in the sel subpackage and the spatial
queries in the prox subpackage; this package holds the structure model and
everything that mutates it.
*/
package qmzone
